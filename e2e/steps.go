package e2e

import (
	"github.com/cucumber/godog"

	"clubswim/e2e/steps/common"
	"clubswim/e2e/steps/meet"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and response assertions
	common.RegisterSteps(ctx, tc)

	// Meet setup, results and scoreboards
	meet.RegisterSteps(ctx, tc)
}
