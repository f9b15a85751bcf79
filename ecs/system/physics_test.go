package system

import (
	"testing"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

func TestPhysicsBlocked(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	player := addPlayer(t, w, 20, 100)
	addBlock(t, w, 50, 100, 20, 20)
	ps.Update(w)

	pb, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{name: "free", x: 20, y: 100, want: false},
		{name: "inside wall", x: 45, y: 100, want: true},
		{name: "above wall", x: 50, y: 60, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ps.Blocked(player, pb, tc.x, tc.y); got != tc.want {
				t.Fatalf("Blocked(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}

	if p := pb.Body.Position(); p.X != 20 {
		t.Fatalf("expected body restored to x=20, got %v", p.X)
	}
}

func TestPhysicsOverlappingSensors(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	player := addPlayer(t, w, 100, 110)
	gate := addGate(t, w, 100, 100)
	crop := addCrop(t, w, 300, 300, component.Crop{Stages: 5, Duration: 1})
	ps.Update(w)

	got := ps.Overlapping(player)
	if !contains(got, gate) {
		t.Fatalf("expected gate sensor in %v", got)
	}
	if contains(got, crop) {
		t.Fatalf("did not expect distant crop in %v", got)
	}

	transformOf(t, w, player).X, transformOf(t, w, player).Y = 300, 302
	ps.Update(w)
	got = ps.Overlapping(player)
	if !contains(got, crop) || contains(got, gate) {
		t.Fatalf("expected only crop after moving, got %v", got)
	}
}

func TestPhysicsDisabledShapeDoesNotBlock(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	player := addPlayer(t, w, 100, 130)
	gate := addGate(t, w, 100, 100)
	ps.Update(w)

	pb, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ps.Blocked(player, pb, 100, 98) {
		t.Fatalf("expected closed gate to block")
	}

	gatePB, _ := ecs.Get(w, gate, component.PhysicsBodyComponent.Kind())
	gatePB.Disabled = true
	ps.Update(w)
	if ps.Blocked(player, pb, 100, 98) {
		t.Fatalf("expected disabled gate not to block")
	}
}

func TestPhysicsDropsBodiesOfDestroyedEntities(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	addPlayer(t, w, 20, 100)
	wall := addBlock(t, w, 50, 100, 20, 20)
	ps.Update(w)
	if ps.Bodies() != 2 {
		t.Fatalf("expected 2 bodies, got %d", ps.Bodies())
	}

	ecs.DestroyEntity(w, wall)
	ps.Update(w)
	if ps.Bodies() != 1 {
		t.Fatalf("expected 1 body after destroy, got %d", ps.Bodies())
	}
}
