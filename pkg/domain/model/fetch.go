package model

// Fact names one of the independent pieces of metadata fetched per repository
type Fact string

const (
	FactRepoInfo          Fact = "repo_info"
	FactLastCommit        Fact = "last_commit"
	FactLastRelease       Fact = "last_release"
	FactDisabledWorkflows Fact = "disabled_workflows"
)

// Outcome is the result class of a single fetch
type Outcome string

const (
	OutcomePresent Outcome = "present"
	OutcomeAbsent  Outcome = "absent"
	OutcomeFailed  Outcome = "failed"
)
