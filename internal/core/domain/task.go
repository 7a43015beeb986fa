package domain

// Stage identifies which of the five build stages produced a task.
type Stage int

const (
	// StageTranslate copies C sources into the build tree and translates Vala into C.
	StageTranslate Stage = iota
	// StageCompile compiles one C file into one object file.
	StageCompile
	// StageLinkLibrary links a module's objects into a versioned shared object.
	StageLinkLibrary
	// StageSymlink creates the unversioned development symlink for a shared object.
	StageSymlink
	// StageLinkBinary links an executable against its dependency libraries.
	StageLinkBinary
)

// String returns the short stage name used in task names.
func (s Stage) String() string {
	switch s {
	case StageTranslate:
		return "translate"
	case StageCompile:
		return "compile"
	case StageLinkLibrary:
		return "link"
	case StageSymlink:
		return "symlink"
	case StageLinkBinary:
		return "bin"
	default:
		return "unknown"
	}
}

// Task represents a unit of work in the build system.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name    InternedString
	Module  InternedString
	Stage   Stage
	Actions []Action
	// Inputs are the file_dep of the task: files whose change forces a rerun.
	Inputs []InternedString
	// Outputs are the targets of the task: files the task promises to produce.
	Outputs []InternedString
	// Dependencies are derived by Graph.Link from the producers of Inputs.
	Dependencies []InternedString
}

// TaskName builds the canonical task name "<module>.<stage>:<subtask>".
func TaskName(module string, stage Stage, subtask string) InternedString {
	return NewInternedString(module + "." + stage.String() + ":" + subtask)
}

// ActionKind discriminates the Action variants.
type ActionKind int

const (
	// ActionExec runs an external command.
	ActionExec ActionKind = iota
	// ActionMakeDir creates a directory and its parents.
	ActionMakeDir
	// ActionCopyInto copies a file into a directory.
	ActionCopyInto
	// ActionSymlink creates a symbolic link.
	ActionSymlink
)

// Action is one step of a task. Only the fields matching Kind are meaningful.
type Action struct {
	kind    ActionKind
	command Command
	path    string
	target  string
}

// Exec returns an action that runs cmd.
func Exec(cmd Command) Action {
	return Action{kind: ActionExec, command: cmd}
}

// MakeDir returns an action equivalent to "mkdir -p dir".
func MakeDir(dir string) Action {
	return Action{kind: ActionMakeDir, path: dir}
}

// CopyInto returns an action equivalent to "cp src dir/".
func CopyInto(src, dir string) Action {
	return Action{kind: ActionCopyInto, path: src, target: dir}
}

// Symlink returns an action that creates link pointing at target.
// The target is stored verbatim, so a bare file name yields a relative link.
func Symlink(target, link string) Action {
	return Action{kind: ActionSymlink, path: link, target: target}
}

// Kind reports which variant a is.
func (a Action) Kind() ActionKind { return a.kind }

// Command returns the command of an ActionExec.
func (a Action) Command() Command { return a.command }

// Path returns the directory of an ActionMakeDir, the source of an ActionCopyInto,
// or the link path of an ActionSymlink.
func (a Action) Path() string { return a.path }

// Target returns the destination directory of an ActionCopyInto
// or the link target of an ActionSymlink.
func (a Action) Target() string { return a.target }

// String renders the action as the shell line it is equivalent to.
func (a Action) String() string {
	switch a.kind {
	case ActionExec:
		return a.command.String()
	case ActionMakeDir:
		return "mkdir -p " + a.path
	case ActionCopyInto:
		return "cp " + a.path + " " + a.target
	case ActionSymlink:
		return "ln -s -T " + a.target + " " + a.path
	default:
		return ""
	}
}
