// cmd/headless/plan.go
package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/opd-ai/go-bounce/pkg/engine"
	"github.com/opd-ai/go-bounce/pkg/physics"
)

// Plan holds scripted inputs keyed by the tick they are submitted before.
type Plan map[uint64][]engine.Input

// ParsePlan reads entries of the form "tick:verb[:x,y]" separated by ';'.
// Verbs are left, right, keyup, press, move and release; press and move take
// a position.
func ParsePlan(s string) (Plan, error) {
	plan := make(Plan)
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		tick, in, err := parseEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("plan entry %q: %w", entry, err)
		}
		plan[tick] = append(plan[tick], in)
	}
	return plan, nil
}

func parseEntry(entry string) (uint64, engine.Input, error) {
	parts := strings.Split(entry, ":")
	if len(parts) < 2 {
		return 0, engine.Input{}, fmt.Errorf("want tick:verb")
	}

	tick, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, engine.Input{}, fmt.Errorf("bad tick: %w", err)
	}

	verb := strings.ToLower(parts[1])
	switch verb {
	case "left":
		return tick, engine.Input{Kind: engine.InputKeyDown, Key: engine.KeyArrowLeft}, nil
	case "right":
		return tick, engine.Input{Kind: engine.InputKeyDown, Key: engine.KeyArrowRight}, nil
	case "keyup":
		return tick, engine.Input{Kind: engine.InputKeyUp}, nil
	case "release":
		return tick, engine.Input{Kind: engine.InputPressEnd}, nil
	case "press", "move":
		if len(parts) != 3 {
			return 0, engine.Input{}, fmt.Errorf("%s needs a position", verb)
		}
		pos, err := parsePosition(parts[2])
		if err != nil {
			return 0, engine.Input{}, err
		}
		kind := engine.InputPressStart
		if verb == "move" {
			kind = engine.InputPointerMove
		}
		return tick, engine.Input{Kind: kind, Pos: pos}, nil
	default:
		return 0, engine.Input{}, fmt.Errorf("unknown verb %q", verb)
	}
}

func parsePosition(s string) (physics.Vector2D, error) {
	xy := strings.Split(s, ",")
	if len(xy) != 2 {
		return physics.Vector2D{}, fmt.Errorf("position %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
	if err != nil {
		return physics.Vector2D{}, fmt.Errorf("position x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
	if err != nil {
		return physics.Vector2D{}, fmt.Errorf("position y: %w", err)
	}
	return physics.Vector2D{X: x, Y: y}, nil
}

// Submit queues the inputs planned for tick
func (p Plan) Submit(tick uint64, session *engine.Session) int {
	n := 0
	for _, in := range p[tick] {
		if session.Submit(in) {
			n++
		}
	}
	return n
}

// Ticks returns the planned ticks in ascending order
func (p Plan) Ticks() []uint64 {
	ticks := make([]uint64, 0, len(p))
	for t := range p {
		ticks = append(ticks, t)
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i] < ticks[j] })
	return ticks
}
