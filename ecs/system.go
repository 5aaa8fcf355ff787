package ecs

// System is a per-tick behavior. Implementations are usually pointers to
// structs whose Query and Singleton fields the Scheduler binds on Register;
// any other fields persist between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}
