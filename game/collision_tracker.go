// File: game/collision_tracker.go
package game

// CollisionKey identifies a contact between two entities.
// Object1ID is the moving object (the ball), Object2ID the surface it touches.
type CollisionKey struct {
	Object1ID int
	Object2ID int
}

// CollisionTracker remembers which contacts are ongoing so a response fires
// once when a contact begins, not on every tick the boxes keep overlapping.
// It is owned by the simulation tick and is not safe for concurrent use.
type CollisionTracker struct {
	activeCollisions map[CollisionKey]bool
}

func NewCollisionTracker() *CollisionTracker {
	return &CollisionTracker{
		activeCollisions: make(map[CollisionKey]bool),
	}
}

// BeginCollision registers a contact. It returns true only when the contact is new.
func (ct *CollisionTracker) BeginCollision(key CollisionKey) bool {
	if ct.activeCollisions[key] {
		return false
	}
	ct.activeCollisions[key] = true
	return true
}

// EndCollision forgets a contact once the boxes no longer overlap.
func (ct *CollisionTracker) EndCollision(key CollisionKey) {
	delete(ct.activeCollisions, key)
}

func (ct *CollisionTracker) IsColliding(key CollisionKey) bool {
	return ct.activeCollisions[key]
}

// ActiveFor returns the ongoing contacts of object1ID.
func (ct *CollisionTracker) ActiveFor(object1ID int) []CollisionKey {
	keys := make([]CollisionKey, 0)
	for key := range ct.activeCollisions {
		if key.Object1ID == object1ID {
			keys = append(keys, key)
		}
	}
	return keys
}

// ClearAll drops every contact, e.g. when the ball is teleported by a round reset.
func (ct *CollisionTracker) ClearAll() {
	ct.activeCollisions = make(map[CollisionKey]bool)
}
