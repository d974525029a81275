package ranking

// curatedJournals is the fixed journal-to-tier table, checked before any
// live lookup. Keys are pre-normalized (lowercase, no leading "the", no
// punctuation). Order matters for the substring fallback: specific names
// go before generic ones.
var curatedJournals = []struct {
	name string
	tier Tier
}{
	// Multidisciplinary flagships
	{"nature", Q1},
	{"science", Q1},
	{"cell", Q1},
	{"proceedings of the national academy of sciences", Q1},
	{"pnas", Q1},
	{"nature communications", Q1},
	{"science advances", Q1},

	// Medicine
	{"lancet", Q1},
	{"new england journal of medicine", Q1},
	{"jama", Q1},
	{"bmj", Q1},
	{"nature medicine", Q1},
	{"plos medicine", Q1},

	// Life sciences
	{"nature genetics", Q1},
	{"nature methods", Q1},
	{"nature biotechnology", Q1},
	{"molecular cell", Q1},
	{"elife", Q1},
	{"genome research", Q1},
	{"nucleic acids research", Q1},
	{"bioinformatics", Q1},
	{"molecular biology and evolution", Q1},
	{"systematic biology", Q1},

	// Physical sciences and engineering
	{"physical review letters", Q1},
	{"journal of the american chemical society", Q1},
	{"angewandte chemie", Q1},
	{"advanced materials", Q1},
	{"ieee transactions on pattern analysis and machine intelligence", Q1},
	{"journal of machine learning research", Q1},

	// Solid field journals
	{"plos computational biology", Q2},
	{"bmc bioinformatics", Q2},
	{"plos one", Q2},
	{"scientific reports", Q2},
	{"peerj", Q2},
	{"frontiers in genetics", Q2},
	{"journal of theoretical biology", Q2},
	{"bmc genomics", Q2},

	// Lower-visibility venues
	{"heliyon", Q3},
	{"plos currents", Q3},
	{"f1000research", Q3},
	{"cureus", Q4},
}

// q1Fragments are name fragments of high-impact venues, used by the
// pattern heuristic after table and bibliometric lookups fail.
var q1Fragments = []string{
	"nature",
	"science",
	"cell",
	"lancet",
	"new england journal",
	"annual review",
	"proceedings of the national academy",
	"physical review letters",
}

// q2Fragments catch the broad "society journal" naming style.
var q2Fragments = []string{
	"transactions",
	"journal of",
	"international journal",
	"proceedings of",
	"letters",
	"annals of",
}
