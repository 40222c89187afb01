package annotation

// SharedImmutable marks a value that is fully constructed before any other
// goroutine can see it and never mutated afterwards. Once published, any
// goroutine may read it without synchronization.
type SharedImmutable struct{}

// ThreadLocal marks a value owned by exactly one execution context. Other
// contexts must never observe or mutate it; each context that needs the value
// holds its own instance. Go has no goroutine-local storage, so owners keep
// the value on their own stack, in a struct only they reach, or in a Local.
type ThreadLocal struct{}
