package builtins

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/siujs/cli/pkg/fs"
	"github.com/siujs/cli/pkg/hooks"
)

// Git hooks understood by glint, camelized.
const (
	HookPreCommit        = "preCommit"
	HookPrepareCommitMsg = "prepareCommitMsg"
	HookCommitMsg        = "commitMsg"
	HookPostCommit       = "postCommit"
	HookPostMerge        = "postMerge"

	defaultCommitMsgPath = ".git/COMMIT_EDITMSG"
)

// GitHooks lists the git hooks glint can run, as typed on the command line.
var GitHooks = []string{"pre-commit", "prepare-commit-msg", "commit-msg", "post-commit", "post-merge"}

var commitRE = regexp.MustCompile(
	`^(revert: )?(feat|wip|fix|to|upd|docs|style|refactor|perf|types|test|wf|chore|ci|build|release)(\(.+\))?: .{1,50}`)

var gitParamsEnv = []string{"SIU_GIT_PARAMS", "HUSKY_GIT_PARAMS", "GIT_PARAMS"}

var configCandidates = []string{
	".%src.js", "%s.config.js", ".%s", ".%src", ".%src.json",
	".%src.yml", ".%src.yaml", ".%src.json5", ".%src.cjs", "%s.config.cjs",
}

// ValidCommitMessage reports whether msg follows the conventional commit format.
func ValidCommitMessage(msg string) bool {
	return commitRE.MatchString(strings.TrimSpace(msg))
}

func (b *Builtins) glintFallback(api *hooks.CommandAPI) error {
	return api.Process(func(c *hooks.Context) error {
		switch hook := c.Opts().Hook; hook {
		case HookPreCommit:
			return b.preCommit(c)
		case HookCommitMsg:
			return b.commitMsg(c)
		default:
			c.Logf("Nothing to lint for git hook %q", hook)
			return nil
		}
	})
}

func (b *Builtins) commitMsg(c *hooks.Context) error {
	path := b.commitMsgPath(c.Opts().CommitEditMsg)
	data, err := b.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCommitMessageMissing, path, err)
	}

	msg := strings.TrimSpace(string(data))
	if ValidCommitMessage(msg) {
		return nil
	}

	c.Printf("ERROR: invalid commit message format.")
	c.Printf("Proper commit message format is required for automated changelog generation. Examples:")
	c.Printf("    feat(xxx): add some logic function or add some option")
	c.Printf("    fix: handle events on blur (close #28)")
	return fmt.Errorf("%w: %q", ErrInvalidCommitMessage, msg)
}

// commitMsgPath picks the message file from the argument, the hook
// environment or the git default, relative to the root.
func (b *Builtins) commitMsgPath(arg string) string {
	path := arg
	for _, key := range gitParamsEnv {
		if path != "" {
			break
		}
		path = b.getenv(key)
	}
	if path == "" {
		path = defaultCommitMsgPath
	}
	if fields := strings.Fields(path); len(fields) > 0 {
		path = fields[0]
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.root, path)
	}
	return path
}

// preCommit formats and lints the staged files with the prettier and eslint
// binaries of the root, or runs the root lint script when neither is installed.
func (b *Builtins) preCommit(c *hooks.Context) error {
	files, err := b.git.StagedFiles(b.root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		c.Logf("No staged files")
		return nil
	}
	if branch, err := b.git.GetCurrentBranch(b.root); err == nil {
		c.Logf("Linting %d staged files on branch %s", len(files), branch)
	}

	ran := false
	for _, tool := range []struct {
		name string
		args []string
	}{
		{name: "prettier", args: []string{"--write"}},
		{name: "eslint", args: []string{"--fix"}},
	} {
		ok, err := b.runBin(c.Context(), c, tool.name, tool.args, files)
		if err != nil {
			return err
		}
		ran = ran || ok
	}
	if ran {
		return nil
	}

	root, err := b.rootPackage()
	if err != nil {
		return err
	}
	if !hasScript(root.Meta, "lint") {
		c.Logf("No prettier, eslint or lint script found")
		return nil
	}
	return b.npm(c.Context(), npmParams{Dir: b.root, Args: []string{"run", "lint"}, Stream: c.Output()})
}

// runBin runs node_modules/.bin/name on files. It reports false when the
// binary is not installed.
func (b *Builtins) runBin(ctx context.Context, c *hooks.Context, name string, args, files []string) (bool, error) {
	bin := filepath.Join(b.root, "node_modules", ".bin", name)
	exists, err := b.fs.Exists(bin)
	if err != nil || !exists {
		return false, err
	}

	full := make([]string, 0, len(args)+len(files)+1)
	if cfg := b.findConfig(name); cfg != "" {
		full = append(full, "--config="+cfg)
	}
	full = append(full, args...)
	full = append(full, files...)

	if _, err := b.fs.RunCommand(ctx, fs.RunCommandParams{
		Dir:    b.root,
		Name:   bin,
		Args:   full,
		Stream: c.Output(),
	}); err != nil {
		return true, err
	}
	return true, nil
}

func (b *Builtins) findConfig(tool string) string {
	for _, candidate := range configCandidates {
		path := filepath.Join(b.root, strings.ReplaceAll(candidate, "%s", tool))
		if exists, err := b.fs.Exists(path); err == nil && exists {
			return path
		}
	}
	return ""
}
