//go:build !rp2040 && (!linux || baremetal)

package platform

import (
	"smartfarm-go/config"
	"smartfarm-go/errcode"
)

// Open reports that this target has no peripheral bindings.
func Open(cfg config.Config) (*Peripherals, error) {
	return nil, &errcode.E{C: errcode.Unsupported, Op: "platform.open", Msg: cfg.Board.Name}
}
