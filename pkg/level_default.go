//go:build !smdpkt_debug

package pkg

import "github.com/joeycumines/logiface"

// defaultLogLevel keeps the wrapper silent in host processes unless something
// is wrong.
const defaultLogLevel = logiface.LevelWarning
