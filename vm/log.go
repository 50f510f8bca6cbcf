package vm

import (
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

// log is the package logger. The runtime only logs diagnostics on it
// (bootstrap phases, collector statistics); language output goes through
// the host write callback.
var log = commonlog.GetLogger("wren.vm")
