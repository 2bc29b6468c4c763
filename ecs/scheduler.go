package ecs

// System advances part of the world by dt seconds.
type System interface {
	Update(w *World, dt float64)
}

// SystemFunc adapts a function to System.
type SystemFunc func(w *World, dt float64)

func (f SystemFunc) Update(w *World, dt float64) {
	f(w, dt)
}

// Scheduler runs systems in insertion order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World, dt float64) {
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}
