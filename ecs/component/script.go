package component

// ScriptBehavior attaches a tengo behavior script to an autonomous crew
// member. The script runtime runs it every EveryFrames ticks.
type ScriptBehavior struct {
	Path        string
	EveryFrames int
	Timer       int
}

var ScriptBehaviorComponent = NewComponent[ScriptBehavior]()
