package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to interpret results.

func describeTimeline() string {
	return `Builds a clustered timeline layout of a repository's commit history.

USE WHEN:
- Visualizing how work is distributed across a project's lifetime
- Finding bursts of activity and quiet stretches
- Summarizing a repository's history for a narrative

INTERPRETING RESULTS:
- Every commit is positioned 0-100 along the buffered date range
- Commits within the threshold distance of each other merge into clusters
- Cluster position is the mean of member positions; count is the member total
- Lower thresholds (tight, 0.5) keep more standalone points; higher
  thresholds (very_loose, 10) merge aggressively

METRICS RETURNED:
- singles: standalone positioned commits with any attached analysis
- clusters: merged commit groups with positions, counts, and analyses
- range: the buffered date span; threshold: the distance used`
}

func describeBuckets() string {
	return `Partitions a repository's commits into calendar period buckets.

USE WHEN:
- Measuring activity per day, week, two_weeks, month, quarter, or year
- Building commit frequency charts
- Comparing output across periods

INTERPRETING RESULTS:
- Keys are period labels: day/week/two_weeks use the period's start date,
  months use YYYY-MM, quarters YYYY-Qn, years YYYY
- Weeks start on Sunday; two-week buckets anchor on even week numbers
- Every commit lands in exactly one bucket

METRICS RETURNED:
- A map of period key to the commits inside that period`
}

func describeGroups() string {
	return `Aggregates stored commit analyses by type, author, or calendar month.

USE WHEN:
- Counting work by category (FEATURE, FIX, DOCS, ...)
- Seeing which authors produced which changes
- Tracking the mix of work over months
- Narrowing any of the above to one author or a set of types via the
  author and types filters

INTERPRETING RESULTS:
- type groups use the analysis type verbatim
- author and date groups resolve each analysis to its commit; analyses
  whose commit is missing land in the "Unknown" group and are listed in
  unresolved
- date keys are always YYYY-MM regardless of any other granularity

METRICS RETURNED:
- groups: map of key to analyses; unresolved: dangling analysis references`
}

func describeGenerate() string {
	return `Classifies every commit in a repository and stores the resulting analyses.

USE WHEN:
- Bootstrapping the analysis document for a repository
- Refreshing analyses after new commits

INTERPRETING RESULTS:
- Classification is rule-based on the commit message: conventional-commit
  prefixes first (feat:, fix:, docs:, ...), then keyword matching
- Deterministic: rerunning on the same history yields the same analyses
- Existing analyses for the repository are replaced

METRICS RETURNED:
- generated: the number of analyses written`
}

func describeImpact() string {
	return `Builds a hierarchical file-impact tree from commit diff stats.

USE WHEN:
- Finding which files and directories absorb the most change
- Rendering treemap-style views of repository activity
- Spotting hotspots worth a closer look

INTERPRETING RESULTS:
- Every file and each of its ancestor directories is credited with the
  commit's changes to that file
- commits counts distinct commits touching the subtree, not change volume
- Flattened treemap cells give a directory 20% of its weight and split
  the rest among children by change share

METRICS RETURNED:
- root: the nested impact tree; summary: totals and top files`
}

func describeComplexity() string {
	return `Scores every commit on complexity (change volume) and impact scope (breadth).

USE WHEN:
- Finding unusually large or broad commits
- Comparing change patterns between periods or authors
- Feeding scatter plots of complexity vs scope

INTERPRETING RESULTS:
- Both scores are scaled to 1-10
- Complexity is log-scaled on lines changed, saturating at 2000 lines
- Impact scope is linear on files touched, saturating at 40 files
- Commits without diff stats fall back to message length, so scores stay
  comparable within a metadata-only history
- Category and color come from the commit's stored analysis type

METRICS RETURNED:
- scores: per-commit complexity, impact_scope, category, color
- summary: means, standard deviation, P50/P95 percentiles`
}

func describeThemes() string {
	return `Splits the commit sequence into contiguous thematic development phases.

USE WHEN:
- Narrating a project's history as phases
- Summarizing long histories into a handful of eras

INTERPRETING RESULTS:
- The date-sorted history is cut into min(max_themes, max(2, total/5))
  near-equal chunks; earlier chunks absorb the remainder
- Themes are assigned round-robin from a fixed catalog (Foundation,
  Core Features, Stabilization, ...), so names describe position in the
  sequence, not content

METRICS RETURNED:
- segments: theme, member commits, start and end dates`
}

func describeFocus() string {
	return `Derives per-author activity and focus distributions from touched files.

USE WHEN:
- Understanding who works on what kind of change
- Building team overviews from history alone

INTERPRETING RESULTS:
- Focus areas are Code, Tests, Docs, Config, Tooling, classified from
  file paths
- Percentages are integers that always sum to exactly 100 per author
- Commits without diff stats count as one Code touch
- last_active is the author's most recent commit date

METRICS RETURNED:
- developers: author, commit count, last_active, focus percentages`
}
