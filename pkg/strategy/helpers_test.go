package strategy

import (
	"github.com/anonproto/circuitsim/pkg/catalog"
	"github.com/anonproto/circuitsim/pkg/timeline"
)

func buildTimeline(cat *catalog.Catalog) timeline.Timeline {
	return timeline.Build(cat.Downloads())
}
