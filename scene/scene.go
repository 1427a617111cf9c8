package scene

import (
	"github.com/lixenwraith/vi-classroom/pose"
)

// FrameFunc is a per-frame update registered with the scene. It receives the
// elapsed animation time in seconds and must not block.
type FrameFunc func(t float64)

// Scene is the built classroom plus the per-frame hooks that animate it
type Scene struct {
	Layout  Layout
	Variant pose.Variant
	Groups  []*Group
	Actors  []*Actor

	evaluator pose.Evaluator
	hooks     []FrameFunc
}

func newScene(l Layout) *Scene {
	return &Scene{
		Layout:    l,
		Variant:   l.Variant,
		evaluator: pose.NewEvaluator(l.Variant),
	}
}

func (s *Scene) addGroup(g *Group) {
	s.Groups = append(s.Groups, g)
}

// addActor registers the actor's group and its pose hook
func (s *Scene) addActor(a *Actor) {
	s.addGroup(a.Group)
	s.Actors = append(s.Actors, a)
	s.OnFrame(func(t float64) {
		a.Apply(a.Evaluate(s.evaluator, t))
	})
}

// OnFrame registers an update run by Update in registration order
func (s *Scene) OnFrame(fn FrameFunc) {
	s.hooks = append(s.hooks, fn)
}

// Update runs every registered hook for elapsed time t
func (s *Scene) Update(t float64) {
	for _, fn := range s.hooks {
		fn(t)
	}
}

// Evaluator returns the pose evaluator the scene animates with
func (s *Scene) Evaluator() pose.Evaluator {
	return s.evaluator
}

// Actor finds an actor by id
func (s *Scene) Actor(id string) *Actor {
	for _, a := range s.Actors {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// MeshCount returns the number of meshes across all groups
func (s *Scene) MeshCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Meshes)
	}
	return n
}

// RaisingHands counts students whose raise-hand gate is open
func (s *Scene) RaisingHands() int {
	n := 0
	for _, a := range s.Actors {
		if a.Role == RoleStudent && a.Gated {
			n++
		}
	}
	return n
}
