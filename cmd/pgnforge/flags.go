// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/arcbit/pgnforge/internal/config"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	sevenTagOnly = flag.Bool("7", false, "Output only the seven tag roster")
	noTags       = flag.Bool("notags", false, "Don't output any tags")
	lineLength   = flag.Int("w", 80, "Maximum line length")
	outputFormat = flag.String("W", "", "Output format: san, lalg, halg, elalg, xlalg, xolalg, uci, epd, fen, cm")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	splitGames   = flag.Int("#", 0, "Split output into files of N games each")
	splitPattern = flag.String("splitpattern", "", "File name pattern for split output (%s=base, %d=number)")
	splitByECO   = flag.String("E", "", "Split output by ECO level (1-3)")
	ecoMaxHandles = flag.Int("ecomaxhandles", 128, "Maximum simultaneously open files when splitting output by ECO level")

	// Content options
	noComments   = flag.Bool("C", false, "Don't output comments")
	noNAGs       = flag.Bool("N", false, "Don't output NAGs")
	noVariations = flag.Bool("V", false, "Don't output variations")
	noResults    = flag.Bool("noresults", false, "Don't output results")
	noClocks     = flag.Bool("noclocks", false, "Strip clock annotations from comments")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress duplicate games")
	duplicateFile      = flag.String("d", "", "Output duplicates to this file")
	outputDupsOnly     = flag.Bool("U", false, "Output only duplicates (suppress unique games)")
	checkFile          = flag.String("c", "", "Check file for duplicate detection")
	onDiskHashStore    = flag.Bool("Z", false, "Use an on-disk hash store for duplicate detection instead of in-memory")
	hashStoreFile      = flag.String("hashstorefile", "", "Path to the on-disk hash store (default: <checkfile>.hashstore or pgnforge.hashstore)")
	deleteSameSetup    = flag.Bool("deletesamesetup", false, "Suppress games sharing an already-seen starting position")
	fuzzyDepth         = flag.Int("fuzzydepth", 0, "Suppress games reaching the same position at this ply depth (0 = disabled)")
	duplicateCapacity  = flag.Int("duplicatecapacity", 0, "Maximum hash table entries for duplicate detection (0 = unbounded)")

	// ECO classification
	ecoFile = flag.String("e", "", "ECO classification file (PGN format)")

	// Filtering options
	tagFile      = flag.String("t", "", "Tag criteria file for filtering")
	playerFilter = flag.String("p", "", "Filter by player name (either color)")
	whiteFilter  = flag.String("Tw", "", "Filter by White player")
	blackFilter  = flag.String("Tb", "", "Filter by Black player")
	ecoFilter    = flag.String("Te", "", "Filter by ECO code prefix")
	resultFilter = flag.String("Tr", "", "Filter by result (1-0, 0-1, 1/2-1/2)")
	fenFilter    = flag.String("Tf", "", "Filter by FEN position")
	negateMatch  = flag.Bool("n", false, "Output games that DON'T match criteria")
	useSoundex   = flag.Bool("S", false, "Use Soundex for player name matching")
	tagSubstring = flag.Bool("tagsubstr", false, "Match tag values anywhere (substring)")

	// Ply/move bounds
	minPly    = flag.Int("minply", 0, "Minimum ply count")
	maxPly    = flag.Int("maxply", 0, "Maximum ply count (0 = no limit)")
	minMoves  = flag.Int("minmoves", 0, "Minimum number of moves")
	maxMoves  = flag.Int("maxmoves", 0, "Maximum number of moves (0 = no limit)")
	stopAfter = flag.Int("stopafter", 0, "Stop after matching N games")

	// Ending filters
	checkmateFilter = flag.Bool("checkmate", false, "Only output games ending in checkmate")
	stalemateFilter = flag.Bool("stalemate", false, "Only output games ending in stalemate")

	// Game feature filters
	fiftyMoveFilter       = flag.Bool("fifty", false, "Games with 50-move rule")
	seventyFiveMoveFilter = flag.Bool("seventyfive", false, "Games with 75-move rule")
	repetitionFilter      = flag.Bool("repetition", false, "Games with 3-fold repetition")
	fiveFoldRepFilter     = flag.Bool("repetition5", false, "Games with 5-fold repetition")
	insufficientFilter    = flag.Bool("insufficient", false, "Games ending in insufficient material")
	materialOddsFilter    = flag.Bool("materialodds", false, "Games starting from material odds")
	underpromotionFilter  = flag.Bool("underpromotion", false, "Games with underpromotion")
	commentedFilter       = flag.Bool("commented", false, "Only games with comments")
	higherRatedWinner     = flag.Bool("higherratedwinner", false, "Higher-rated player won")
	lowerRatedWinner      = flag.Bool("lowerratedwinner", false, "Lower-rated player won")
	noSetupTags           = flag.Bool("nosetuptags", false, "Exclude games with a SetUp tag")
	onlySetupTags         = flag.Bool("onlysetuptags", false, "Only games with a SetUp tag")

	// Selection ranges
	selectOnly   = flag.String("selectonly", "", "Only output the games at these input positions (e.g. '1,3,5-8' or '5:8')")
	skipMatching = flag.String("skipmatching", "", "Skip the games at these input positions (e.g. '1,3,5-8' or '5:8')")

	// Ply/move truncation
	startPly   = flag.Int("startply", 0, "First ply to output")
	plyLimit   = flag.Int("plylimit", 0, "Maximum number of plies to output")
	dropPly    = flag.Int("dropply", 0, "Number of leading plies to drop")
	dropBefore = flag.String("dropbefore", "", "Drop plies before the first comment matching this text")
	moveRange  = flag.String("moverange", "", "Move number range to output, e.g. '10-20'")
	plyRange   = flag.String("plyrange", "", "Ply range to output, e.g. '10-20'")

	// Exact-count matching
	exactMove  = flag.Int("exactmove", 0, "Match games with exactly this many moves")
	exactPly   = flag.Int("exactply", 0, "Match games with exactly this many plies")
	pieceCount = flag.Int("piececount", 0, "Match games that reach a position with exactly this many pieces")

	// CQL filter
	cqlQuery = flag.String("cql", "", "CQL query to filter games by position patterns")
	cqlFile  = flag.String("cql-file", "", "File containing CQL query")

	// Variation matching
	variationFile = flag.String("v", "", "File with move sequences to match")
	positionFile  = flag.String("x", "", "File with positional variations to match")
	varAnywhere   = flag.Bool("varanywhere", false, "Match variations anywhere in the game, not just from the start")

	// Material matching
	materialMatch      = flag.String("z", "", "Material balance to match (e.g., 'QR:qrr')")
	materialMatchExact = flag.String("y", "", "Exact material balance to match")

	// FEN pattern matching
	fenPattern        = flag.String("fenpattern", "", "Match games reaching a position matching the given FEN pattern")
	fenPatternInvert  = flag.String("fenpatterni", "", "As -fenpattern, but also match the colour-inverted position")

	// Annotations
	addPlyCount      = flag.Bool("plycount", false, "Add PlyCount tag")
	addTotalPlyCount = flag.Bool("totalplycount", false, "Add TotalPlyCount tag")
	addFENComments   = flag.Bool("fencomments", false, "Add FEN comment after each move")
	addHashComments  = flag.Bool("hashcomments", false, "Add position hash after each move")
	addHashcodeTag   = flag.Bool("addhashcode", false, "Add HashCode tag")
	addMatchTag      = flag.Bool("addmatchtag", false, "Add a MaterialMatch tag when -z/-y matches")
	addLabelTag      = flag.Bool("addlabeltag", false, "Add a MatchLabel tag when -fenpattern matches")

	// Tag management
	fixResultTags = flag.Bool("fixresulttags", false, "Fix inconsistent result tags")
	fixTagStrings = flag.Bool("fixtagstrings", false, "Fix malformed tag strings")

	// Validation
	strictMode   = flag.Bool("strict", false, "Only output games that parse without errors")
	validateMode = flag.Bool("validate", false, "Verify all moves are legal")
	fixableMode  = flag.Bool("fixable", false, "Attempt to fix common issues")

	// Logging
	logFile    = flag.String("l", "", "Write diagnostics to log file")
	appendLog  = flag.String("L", "", "Append diagnostics to log file")
	reportOnly = flag.Bool("r", false, "Report errors without extracting games")

	// Polyglot hash
	hashMatch = flag.String("H", "", "Match positions by polyglot hashcode")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no game count)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")

	// Phase 4 options: nested comments, variation splitting, Chess960.
	nestedComments = flag.Bool("nestedcomments", false, "Allow comments to nest inside one another")
	splitVariants  = flag.Bool("splitvariants", false, "Output each RAV variation as its own separate game")
	chess960Mode   = flag.Bool("chess960", false, "Treat games as Chess960/Fischer Random and emit Shredder-FEN")

	// Arguments and configuration files. Both are consumed by a manual
	// os.Args pre-scan before flag.Parse() runs (see loadArgsFromFileIfSpecified
	// and loadConfigFileIfSpecified); they're still registered here so
	// flag.Parse() doesn't reject them as unrecognized.
	_ = flag.String("A", "", "Read additional arguments from FILE")
	_ = flag.String("config", "", "Load flag defaults from a YAML file")
	fileListFile = flag.String("f", "", "Read list of input files from FILE")
)

// applyFlags applies command-line flags to the configuration. The work is
// split into per-concern helpers below so each can be exercised (and
// reasoned about) independently of the others.
func applyFlags(cfg *config.Config) {
	applyTagOutputFlags(cfg)
	applyContentFlags(cfg)
	applyOutputFormatFlags(cfg)
	applyMoveBoundsFlags(cfg)
	applyAnnotationFlags(cfg)
	applyFilterFlags(cfg)
	applyDuplicateFlags(cfg)
	applyPhase4Flags(cfg)

	// Verbosity
	if *quiet {
		cfg.Verbosity = 0
	}

	// Report only mode
	cfg.CheckOnly = *reportOnly
}

// applyTagOutputFlags controls which PGN tags accompany each output game.
func applyTagOutputFlags(cfg *config.Config) {
	if *sevenTagOnly {
		cfg.Output.TagFormat = config.SevenTagRoster
	}
	if *noTags {
		cfg.Output.TagFormat = config.NoTags
	}
}

// applyContentFlags controls which move-text elements are kept on output,
// and whether output is rendered as JSON.
func applyContentFlags(cfg *config.Config) {
	cfg.Output.KeepComments = !*noComments
	cfg.Output.KeepNAGs = !*noNAGs
	cfg.Output.KeepVariations = !*noVariations
	cfg.Output.KeepResults = !*noResults
	cfg.Output.StripClockAnnotations = *noClocks

	cfg.Output.MaxLineLength = uint(*lineLength)

	// JSON output. JSON packages a game as tags-plus-move-array; the EPD/FEN/CM
	// formats and ECO-level splitting each impose their own per-ply or
	// per-file record shape, so the two are mutually exclusive. JSON loses:
	// it's disabled with a warning rather than producing malformed output.
	cfg.Output.JSONFormat = *jsonOutput
	if cfg.Output.JSONFormat && (*outputFormat == "epd" || *outputFormat == "fen" || *outputFormat == "cm" || *splitByECO != "") {
		cfg.Log.Warnf("--json is incompatible with -W%s/-E and has been disabled", *outputFormat)
		cfg.Output.JSONFormat = false
	}
}

// applyOutputFormatFlags selects the move-notation format for output games.
func applyOutputFormatFlags(cfg *config.Config) {
	switch *outputFormat {
	case "lalg":
		cfg.Output.Format = config.LALG
	case "halg":
		cfg.Output.Format = config.HALG
	case "elalg":
		cfg.Output.Format = config.ELALG
	case "xlalg":
		cfg.Output.Format = config.XLALG
	case "xolalg":
		cfg.Output.Format = config.XOLALG
	case "uci":
		cfg.Output.Format = config.UCI
	case "epd":
		cfg.Output.Format = config.EPD
	case "fen":
		cfg.Output.Format = config.FEN
	case "cm":
		cfg.Output.Format = config.CM
	default:
		cfg.Output.Format = config.SAN
	}
}

// applyMoveBoundsFlags configures the ply/move-count range a game must fall
// within to match.
func applyMoveBoundsFlags(cfg *config.Config) {
	if *minPly > 0 || *maxPly > 0 || *minMoves > 0 || *maxMoves > 0 {
		cfg.Filter.CheckMoveBounds = true
		if *minMoves > 0 {
			cfg.Filter.LowerMoveBound = uint(*minMoves)
		}
		if *maxMoves > 0 {
			cfg.Filter.UpperMoveBound = uint(*maxMoves)
		}
	}
}

// applyAnnotationFlags configures the tags and comments added to each
// output game, and the tag-repair options.
func applyAnnotationFlags(cfg *config.Config) {
	cfg.Annotation.AddPlyCount = *addPlyCount
	cfg.Annotation.AddTotalPlyCount = *addTotalPlyCount
	cfg.Annotation.AddFENComments = *addFENComments
	cfg.Annotation.AddHashComments = *addHashComments
	cfg.Annotation.AddHashTag = *addHashcodeTag
	cfg.Annotation.AddMatchTag = *addMatchTag
	cfg.Annotation.AddMatchLabelTag = *addLabelTag

	cfg.Annotation.FixResultTags = *fixResultTags
	cfg.Annotation.FixTagStrings = *fixTagStrings
}

// applyFilterFlags configures the game-feature matching options.
func applyFilterFlags(cfg *config.Config) {
	cfg.Filter.MatchCheckmate = *checkmateFilter
	cfg.Filter.MatchStalemate = *stalemateFilter
	cfg.Filter.CheckFiftyMoveRule = *fiftyMoveFilter
	cfg.Filter.CheckRepetition = *repetitionFilter
	cfg.Filter.MatchUnderpromotion = *underpromotionFilter

	cfg.Filter.UseSoundex = *useSoundex
}

// applyDuplicateFlags configures duplicate-detection sizing. Suppress,
// SuppressOriginals and UseVirtualHashTable are set in setupDuplicateDetector
// instead, since they gate which detector implementation gets constructed.
func applyDuplicateFlags(cfg *config.Config) {
	cfg.Duplicate.MaxCapacity = *duplicateCapacity
}

// applyPhase4Flags configures the later-added options: nested comments,
// Chess960/Fischer Random handling, variation splitting and fixed-ply-depth
// duplicate matching.
func applyPhase4Flags(cfg *config.Config) {
	cfg.AllowNestedComments = *nestedComments
	cfg.SplitVariants = *splitVariants
	cfg.Chess960Mode = *chess960Mode

	cfg.FuzzyDepth = *fuzzyDepth
	if *fuzzyDepth > 0 {
		cfg.Duplicate.FuzzyMatch = true
		cfg.Duplicate.FuzzyDepth = uint(*fuzzyDepth)
	}
}
