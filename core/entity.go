package core

// Entity is a unique identifier for a game object, 0 is never assigned
type Entity uint64
