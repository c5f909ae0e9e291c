package cadview

// debugLog writes frame stats at debug level.
func (r *Renderer) debugLog(stats FrameStats) {
	logger.Debug("frame",
		"instances", stats.Instances,
		"draw_calls", stats.DrawCalls,
		"draw_errors", stats.DrawErrors,
		"elapsed", stats.Elapsed)
}

// debugMaxTreeDepth is the depth above which model validation warns.
const debugMaxTreeDepth = 64

// debugCheckModel warns about hierarchies that are suspiciously deep or that
// reference shapes without parts. Called by the viewer in debug mode.
func debugCheckModel(root *Node) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if depth == debugMaxTreeDepth+1 {
			logger.Warn("tree depth exceeds threshold", "node", n.Name, "threshold", debugMaxTreeDepth)
		}
		for _, s := range n.Shapes() {
			if len(s.Parts()) == 0 {
				logger.Warn("shape has no parts", "node", n.Name, "shape", s.Name)
			}
		}
		for _, c := range n.Children() {
			walk(c, depth+1)
		}
	}
	if root != nil {
		walk(root, 1)
	}
}
