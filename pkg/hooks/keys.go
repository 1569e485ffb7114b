package hooks

import "github.com/siujs/cli/pkg/consts"

// ExKey is the scoped key holding the error captured for a command and package.
const ExKey = "SIU_PLUGIN_CATCH_ERR"

// PluginPrefix returns the prefix of every key owned by the plugin id.
func PluginPrefix(pluginID string) string {
	return "@" + pluginID + "/"
}

// GlobalKey composes the store key of a plugin wide value.
func GlobalKey(pluginID, key string) string {
	return PluginPrefix(pluginID) + key
}

// ScopedKey composes the store key of a value visible only to one command and package.
func ScopedKey(pluginID string, cmd consts.Command, pkg, key string) string {
	scope := "@" + string(cmd)
	if pkg != "" {
		scope += pkg + "/"
	}
	return GlobalKey(pluginID, scope+"/"+key)
}
