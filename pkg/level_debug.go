//go:build smdpkt_debug

package pkg

import "github.com/joeycumines/logiface"

// defaultLogLevel is raised when built with the smdpkt_debug tag.
const defaultLogLevel = logiface.LevelDebug
