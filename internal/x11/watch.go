package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
)

// WatchScreenChanges subscribes to RandR screen-change notifications
// and invokes onChange for each one. It blocks until the connection
// is closed; closing the connection is the only way to stop the
// watch, which suits a daemon that owns the connection for its whole
// lifetime. Queries stay stateless; the callback is a hook for
// logging and cache-free snapshot refresh, not an invalidation
// requirement.
func (c *Connection) WatchScreenChanges(onChange func()) error {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return fmt.Errorf("randr init failed: %w", err)
	}

	err := randr.SelectInputChecked(c.XUtil.Conn(), c.Root, randr.NotifyMaskScreenChange).Check()
	if err != nil {
		return fmt.Errorf("failed to select randr input: %w", err)
	}

	for {
		ev, xerr := c.XUtil.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			// Connection closed.
			return nil
		}
		if xerr != nil {
			continue
		}
		if _, ok := ev.(randr.ScreenChangeNotifyEvent); ok {
			onChange()
		}
	}
}
