// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-bounce/pkg/engine"
	"github.com/opd-ai/go-bounce/pkg/event"
)

const hudFontSize = 18

// statusSource supplies the state shown on the HUD
type statusSource interface {
	State() engine.State
}

// hudText is the single text entity of the HUD
type hudText struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// HUDSystem draws the status line in screen space
type HUDSystem struct {
	source statusSource
	font   *common.Font
	sink   renderSink

	text *hudText
	last string
}

// NewHUDSystem creates a HUD reading from source. The text entity is
// registered with sink on the first Update.
func NewHUDSystem(source statusSource, font *common.Font, sink renderSink) *HUDSystem {
	return &HUDSystem{
		source: source,
		font:   font,
		sink:   sink,
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the text when the status changes
func (hud *HUDSystem) Update(dt float32) {
	status := StatusText(hud.source.State())
	if status == hud.last && hud.text != nil {
		return
	}
	hud.last = status

	if hud.text == nil {
		hud.text = &hudText{BasicEntity: ecs.NewBasic()}
		hud.text.SpaceComponent = common.SpaceComponent{Position: engo.Point{X: 10, Y: 10}}
		hud.text.RenderComponent.SetShader(common.TextHUDShader)
		hud.text.RenderComponent.SetZIndex(1000)
		hud.setText(status)
		if hud.sink != nil {
			hud.sink.Add(&hud.text.BasicEntity, &hud.text.RenderComponent, &hud.text.SpaceComponent)
		}
		return
	}
	hud.setText(status)
}

func (hud *HUDSystem) setText(status string) {
	hud.text.RenderComponent.Drawable = common.Text{
		Font: hud.font,
		Text: status,
	}
}

// StatusText summarises a state for display
func StatusText(st engine.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "life %d   balls %d", st.Player.Life, len(st.Balls))
	if st.Player.Invincibility.Active() {
		fmt.Fprintf(&b, "   shield %s", st.Player.Invincibility)
	}
	switch engine.Outcome(st) {
	case event.OutcomeWon:
		b.WriteString("   you win")
	case event.OutcomeLost:
		b.WriteString("   game over")
	}
	return b.String()
}
