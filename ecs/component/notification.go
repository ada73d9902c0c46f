package component

// Notice is one screen message with its remaining display time in ticks.
type Notice struct {
	Text   string
	Frames int
}

// NotificationFeed is the singleton on-screen message feed. Systems append
// through the notification system's Post; the HUD renders Entries.
type NotificationFeed struct {
	Entries []Notice
}

var NotificationFeedComponent = NewComponent[NotificationFeed]()
