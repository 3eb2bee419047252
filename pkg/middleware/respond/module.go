// pkg/middleware/respond/module.go
package respond

import (
	"github.com/ali-hajeh/response-handler/pkg/envelope"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func ProvideRegistry(log *zap.Logger) *envelope.Registry {
	reg := envelope.NewRegistry()
	reg.SetLogger(log)
	return reg
}

var Module = fx.Options(
	fx.Provide(ProvideRegistry),
	fx.Provide(ProvideMiddleware),
)
