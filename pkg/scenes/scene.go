package scenes

import (
	"github.com/decker502/scrollrig/pkg/show"
)

// Scene is a type alias for show.Scene to maintain backward compatibility.
// All scene implementations should implement the show.Scene interface.
type Scene = show.Scene
