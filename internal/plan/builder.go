package plan

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/anders/scenarist/internal/models"
)

// BuildOptions configures test plan aggregation.
type BuildOptions struct {
	Strategy             models.ExecutionStrategy
	IncludeSetupTeardown bool
}

// DefaultBuildOptions mirrors the tool surface defaults.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{Strategy: models.StrategyOptimized, IncludeSetupTeardown: true}
}

// Input bundles the per-scenario artifacts the builder aggregates.
type Input struct {
	Scenario *models.Scenario
	Flow     *models.ExecutionFlow
	Deps     *models.Dependencies
}

// Build aggregates scenarios into a test plan. Duration aggregation
// depends on the strategy: sequential sums every flow, parallel takes
// the longest, optimized groups scenarios with disjoint dependency sets
// to run together and sums the longest flow per group.
func Build(inputs []Input, opts BuildOptions) *models.TestPlan {
	if opts.Strategy == "" {
		opts.Strategy = models.StrategyOptimized
	}

	tp := &models.TestPlan{
		ID:                uuid.NewString(),
		ExecutionStrategy: opts.Strategy,
	}
	for _, in := range inputs {
		tp.ScenarioTags = append(tp.ScenarioTags, in.Scenario.Tag)
	}

	switch opts.Strategy {
	case models.StrategySequential:
		for _, in := range inputs {
			tp.EstimatedDurationMs += in.Flow.EstimatedDurationMs
		}
	case models.StrategyParallel:
		for _, in := range inputs {
			if in.Flow.EstimatedDurationMs > tp.EstimatedDurationMs {
				tp.EstimatedDurationMs = in.Flow.EstimatedDurationMs
			}
		}
	default:
		groups := groupIndependent(inputs)
		for _, group := range groups {
			longest := 0
			var tags []string
			for _, in := range group {
				tags = append(tags, in.Scenario.Tag)
				if in.Flow.EstimatedDurationMs > longest {
					longest = in.Flow.EstimatedDurationMs
				}
			}
			tp.Groups = append(tp.Groups, tags)
			tp.EstimatedDurationMs += longest
		}
	}

	if opts.IncludeSetupTeardown {
		tp.Setup, tp.Teardown = setupTeardown(inputs)
	}

	return tp
}

// groupIndependent greedily packs scenarios into groups whose
// dependency sets are pairwise disjoint, so everything in one group can
// run concurrently without contending for the same backend or account.
func groupIndependent(inputs []Input) [][]Input {
	var groups [][]Input
	groupKeys := make([]map[string]bool, 0)

	for _, in := range inputs {
		keys := dependencyKeys(in.Deps)
		placed := false
		for gi := range groups {
			if disjoint(groupKeys[gi], keys) {
				groups[gi] = append(groups[gi], in)
				for k := range keys {
					groupKeys[gi][k] = true
				}
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []Input{in})
			groupKeys = append(groupKeys, keys)
		}
	}

	return groups
}

// dependencyKeys flattens a dependency report into a comparable key set.
func dependencyKeys(d *models.Dependencies) map[string]bool {
	keys := make(map[string]bool)
	if d == nil {
		return keys
	}
	for _, api := range d.APIDependencies {
		keys["api:"+api.Endpoint] = true
	}
	for _, data := range d.DataDependencies {
		keys["data:"+data.Kind+":"+data.Name] = true
	}
	return keys
}

func disjoint(a, b map[string]bool) bool {
	for k := range b {
		if a[k] {
			return false
		}
	}
	return true
}

// setupTeardown derives shared setup entries from dependencies required
// by more than one scenario, and teardown entries for anything that
// provisions state.
func setupTeardown(inputs []Input) (setup, teardown []string) {
	apiCount := make(map[string]int)
	accounts := make(map[string]bool)
	flags := make(map[string]bool)

	for _, in := range inputs {
		if in.Deps == nil {
			continue
		}
		seen := make(map[string]bool)
		for _, api := range in.Deps.APIDependencies {
			if !seen[api.Endpoint] {
				seen[api.Endpoint] = true
				apiCount[api.Endpoint]++
			}
		}
		for _, data := range in.Deps.DataDependencies {
			switch data.Kind {
			case "test_account":
				accounts[data.Name] = true
			case "feature_flag":
				flags[data.Name] = true
			}
		}
	}

	for _, endpoint := range sortedKeys(apiCount) {
		if apiCount[endpoint] >= 2 {
			setup = append(setup, fmt.Sprintf("warm up shared dependency %s once for all scenarios", endpoint))
		}
	}
	for _, account := range sortedSet(accounts) {
		setup = append(setup, fmt.Sprintf("provision test account %q", account))
	}
	for _, flag := range sortedSet(flags) {
		setup = append(setup, fmt.Sprintf("enable feature flag %q", flag))
	}

	teardown = append(teardown, "reset app state")
	if len(accounts) > 0 {
		teardown = append(teardown, "release provisioned test accounts")
	}
	if len(flags) > 0 {
		teardown = append(teardown, "restore feature flags to their defaults")
	}

	return setup, teardown
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
