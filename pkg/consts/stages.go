package consts

// Stage names a lifecycle stage of a command.
type Stage string

// Lifecycle stages.
const (
	StageCLI      Stage = "cli"
	StageStart    Stage = "start"
	StageProcess  Stage = "process"
	StageComplete Stage = "complete"
	StageError    Stage = "error"
	StageClean    Stage = "clean"
)

// Stages lists every stage a handler can be registered for.
var Stages = []Stage{StageCLI, StageStart, StageProcess, StageComplete, StageError, StageClean}

// LifecycleStages lists the stages driven by the process state machine.
var LifecycleStages = []Stage{StageStart, StageProcess, StageComplete, StageError, StageClean}

func (s Stage) String() string {
	return string(s)
}

// HookID returns the identifier of the handler list for cmd and stage.
func HookID(cmd Command, stage Stage) string {
	return string(cmd) + "." + string(stage)
}
