package system

import (
	"github.com/milk9111/spacewalk/common"
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

// Notifier is the message sink the simulation posts screen messages
// through. Rendering is someone else's job.
type Notifier interface {
	Post(w *ecs.World, message string, durationSeconds float64)
}

// NotificationSystem owns the singleton on-screen message feed: Post
// appends, Update ages entries out.
type NotificationSystem struct {
	feed ecs.Entity
}

func NewNotificationSystem() *NotificationSystem {
	return &NotificationSystem{}
}

func (ns *NotificationSystem) ensureFeed(w *ecs.World) (*component.NotificationFeed, bool) {
	if ns == nil || w == nil {
		return nil, false
	}
	if ns.feed.Valid() && ecs.IsAlive(w, ns.feed) {
		if feed, ok := ecs.Get(w, ns.feed, component.NotificationFeedComponent.Kind()); ok {
			return feed, true
		}
	}
	if e, ok := w.First(component.NotificationFeedComponent.Kind()); ok {
		ns.feed = e
		if feed, ok := ecs.Get(w, e, component.NotificationFeedComponent.Kind()); ok {
			return feed, true
		}
	}
	e := ecs.CreateEntity(w)
	feed := &component.NotificationFeed{}
	if err := ecs.Add(w, e, component.NotificationFeedComponent.Kind(), feed); err != nil {
		return nil, false
	}
	ns.feed = e
	return feed, true
}

// Post appends a message to the feed for the given duration.
func (ns *NotificationSystem) Post(w *ecs.World, message string, durationSeconds float64) {
	if message == "" {
		return
	}
	feed, ok := ns.ensureFeed(w)
	if !ok {
		return
	}
	frames := int(durationSeconds * common.TicksPerSecond)
	if frames < 1 {
		frames = 1
	}
	feed.Entries = append(feed.Entries, component.Notice{Text: message, Frames: frames})
}

// contactHintSeconds is how long the proximity hints stay up; shorter than
// the transfer notices so they read as ambient.
const contactHintSeconds = 2.5

func (ns *NotificationSystem) Update(w *ecs.World) {
	ns.drainContacts(w)

	feed, ok := ns.ensureFeed(w)
	if !ok {
		return
	}
	kept := feed.Entries[:0]
	for i := range feed.Entries {
		feed.Entries[i].Frames--
		if feed.Entries[i].Frames > 0 {
			kept = append(kept, feed.Entries[i])
		}
	}
	feed.Entries = kept
}

// drainContacts turns the tick's sensor contact events into feed hints.
func (ns *NotificationSystem) drainContacts(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		contact, ok := evt.Data.(ecs.ContactEvent)
		if !ok {
			continue
		}
		switch contact.Kind {
		case ecs.ContactAirlock:
			ns.Post(w, crewName(w, contact.Crew)+" reached an airlock", contactHintSeconds)
		case ecs.ContactLadder:
			ns.Post(w, crewName(w, contact.Crew)+" is near a ladder", contactHintSeconds)
		}
	}
}
