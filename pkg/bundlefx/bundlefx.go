// pkg/bundlefx/bundlefx.go
package bundlefx

import (
	"go.uber.org/fx"

	"github.com/ali-hajeh/response-handler/pkg/middleware/auth"
	"github.com/ali-hajeh/response-handler/pkg/middleware/logger"
	"github.com/ali-hajeh/response-handler/pkg/middleware/metrics"
	"github.com/ali-hajeh/response-handler/pkg/middleware/respond"
)

// Module provided to fx
var Module = fx.Options(
	respond.Module,
	auth.Module,
	logger.Module,
	metrics.Module,
)
