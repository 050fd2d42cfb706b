package main

import (
	"context"

	"gameinsights-backend/cmd/gameinsights-cli/commands"
	"gameinsights-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()
	telemetry.SetupFromEnv(ctx, "gameinsights-cli")
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
