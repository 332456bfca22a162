package flags

const Verbose = `v`
const Quiet = `q`
const Plain = `p`
const Help = `h`
const Root = `C`
const MetricsFile = `metrics`
const FindMaxResults = `n`
const TreeWithSummary = `summary`
