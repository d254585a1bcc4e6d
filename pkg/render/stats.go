package render

import "fmt"

// CullingStats counts what a DispatchVisitor did since the last reset.
type CullingStats struct {
	Tested             int // cull nodes tested against the frustum
	Culled             int // cull nodes rejected
	Passed             int // cull nodes traversed
	FrustumUpdates     int // local frustum recomputations
	StateDispatches    int // State.Dispatch calls that recorded something
	CommandsDispatched int // Command.Dispatch calls
}

// CullRatio returns the fraction of tested nodes that were culled.
func (s CullingStats) CullRatio() float64 {
	if s.Tested == 0 {
		return 0
	}
	return float64(s.Culled) / float64(s.Tested)
}

func (s CullingStats) String() string {
	return fmt.Sprintf("tested=%d culled=%d passed=%d frustum=%d state=%d commands=%d",
		s.Tested, s.Culled, s.Passed, s.FrustumUpdates, s.StateDispatches, s.CommandsDispatched)
}
