package autoscroll

import (
	"fmt"
	"testing"

	"github.com/cucumber/godog"
)

type scenarioContext struct {
	vp    *fakeViewport
	sched *manualScheduler
	ctrl  *Controller
}

var keyNames = map[string]Key{
	"PageUp":    KeyPageUp,
	"Home":      KeyHome,
	"ArrowUp":   KeyArrowUp,
	"PageDown":  KeyPageDown,
	"End":       KeyEnd,
	"ArrowDown": KeyArrowDown,
}

func (sc *scenarioContext) aLogPane(content, visible int) error {
	sc.vp = &fakeViewport{visible: visible, content: content}
	sc.sched = &manualScheduler{}
	sc.ctrl = New(sc.vp, sc.sched, Options{Route: Route{Path: "/admin/logs", Rule: MatchPrefix}})
	return nil
}

func (sc *scenarioContext) scrolledTo(offset int) error {
	sc.vp.scroll(offset)
	sc.ctrl.HandleScroll()
	return nil
}

func (sc *scenarioContext) keyMovesTo(name string, offset int) error {
	k, ok := keyNames[name]
	if !ok {
		return fmt.Errorf("unknown key %q", name)
	}
	if sc.vp.offset != offset {
		sc.vp.scroll(offset)
		sc.ctrl.HandleScroll()
	}
	sc.ctrl.HandleKey(k)
	return nil
}

func (sc *scenarioContext) renderTick() error {
	sc.sched.tick()
	return nil
}

func (sc *scenarioContext) contentGrows(size int) error {
	sc.vp.content = size
	return nil
}

func (sc *scenarioContext) resumesLive() error {
	sc.ctrl.ResumeLive()
	return nil
}

func (sc *scenarioContext) navigatesTo(dest string) error {
	sc.ctrl.Leave(dest)
	return nil
}

func (sc *scenarioContext) modeIs(want string) error {
	if got := sc.ctrl.Mode().String(); got != want {
		return fmt.Errorf("expected mode %q, got %q", want, got)
	}
	return nil
}

func (sc *scenarioContext) offsetIs(want int) error {
	if sc.vp.offset != want {
		return fmt.Errorf("expected offset %d, got %d", want, sc.vp.offset)
	}
	return nil
}

func (sc *scenarioContext) noTickScheduled() error {
	if n := sc.sched.tick(); n != 0 {
		return fmt.Errorf("expected no active render tick, %d ran", n)
	}
	return nil
}

func InitializeAutoscrollScenario(s *godog.ScenarioContext) {
	sc := &scenarioContext{}

	s.Step(`^a log pane with content height (\d+) and visible height (\d+)$`, sc.aLogPane)
	s.Step(`^the pane is scrolled to offset (\d+)$`, sc.scrolledTo)
	s.Step(`^the "(\w+)" key moves the pane to offset (\d+)$`, sc.keyMovesTo)
	s.Step(`^a render tick fires$`, sc.renderTick)
	s.Step(`^the content grows to (\d+)$`, sc.contentGrows)
	s.Step(`^the reader resumes live$`, sc.resumesLive)
	s.Step(`^the view navigates to "([^"]*)"$`, sc.navigatesTo)
	s.Step(`^the mode is "([^"]*)"$`, sc.modeIs)
	s.Step(`^the offset is (\d+)$`, sc.offsetIs)
	s.Step(`^no render tick is scheduled$`, sc.noTickScheduled)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeAutoscrollScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Tags:     "~@wip",
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
