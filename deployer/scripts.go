package deployer

import (
	"context"
	"slices"
)

const TagAll = "all"

// Script is one ordered, tagged deploy step.
type Script struct {
	Name string
	Tags []string
	Run  func(ctx context.Context, f Framework) error
}

// Scripts are run in this order.
var Scripts = []Script{
	{
		Name: "00-deploy-mocks",
		Tags: []string{TagAll, "mocks"},
		Run:  DeployMocks,
	},
	{
		Name: "01-deploy-fund-me",
		Tags: []string{TagAll, "fundme"},
		Run:  DeployFundMe,
	},
}

// SelectScripts keeps the scripts carrying at least one of tags, in order.
func SelectScripts(scripts []Script, tags ...string) []Script {
	if len(tags) == 0 {
		tags = []string{TagAll}
	}
	var result []Script
	for _, s := range scripts {
		for _, tag := range tags {
			if slices.Contains(s.Tags, tag) {
				result = append(result, s)
				break
			}
		}
	}
	return result
}
