package analyzer

var modals = set("can", "could", "may", "might", "must", "shall", "should", "will", "would")

var auxiliaries = set("be", "am", "is", "are", "was", "were", "been", "being", "have", "has", "had", "do", "does", "did")

// irregularPast lists simple-past forms reported as Past regardless of the
// lemma. Some are identical to the base form (read, put, cut).
var irregularPast = set(
	"went", "took", "had", "was", "were", "did", "said", "got", "made", "came", "saw", "felt",
	"knew", "thought", "found", "gave", "told", "became", "left", "put", "meant", "kept", "let",
	"began", "ran", "brought", "wrote", "sat", "stood", "lost", "paid", "met", "set", "led",
	"understood", "spoke", "read", "spent", "grew", "won", "taught", "bought", "sent", "built",
	"fell", "cut", "sold", "broke", "hit", "ate", "caught", "drew", "chose", "wore", "cast",
	"sought", "arose", "slept", "bore", "lay", "rode", "shot", "sang", "sank", "sprang", "stole",
	"swam", "threw", "woke", "froze", "hung",
)

// irregularVerbs maps a base form to its past and past participle.
var irregularVerbs = map[string][2]string{
	"arise": {"arose", "arisen"}, "be": {"was", "been"}, "bear": {"bore", "borne"},
	"become": {"became", "become"}, "begin": {"began", "begun"}, "bite": {"bit", "bitten"},
	"break": {"broke", "broken"}, "bring": {"brought", "brought"}, "build": {"built", "built"},
	"buy": {"bought", "bought"}, "cast": {"cast", "cast"}, "catch": {"caught", "caught"},
	"choose": {"chose", "chosen"}, "come": {"came", "come"}, "cut": {"cut", "cut"},
	"do": {"did", "done"}, "draw": {"drew", "drawn"}, "drink": {"drank", "drunk"},
	"drive": {"drove", "driven"}, "eat": {"ate", "eaten"}, "fall": {"fell", "fallen"},
	"feel": {"felt", "felt"}, "find": {"found", "found"}, "fly": {"flew", "flown"},
	"forget": {"forgot", "forgotten"}, "freeze": {"froze", "frozen"}, "get": {"got", "gotten"},
	"give": {"gave", "given"}, "go": {"went", "gone"}, "grow": {"grew", "grown"},
	"hang": {"hung", "hung"}, "have": {"had", "had"}, "hear": {"heard", "heard"},
	"hide": {"hid", "hidden"}, "hit": {"hit", "hit"}, "hold": {"held", "held"},
	"keep": {"kept", "kept"}, "know": {"knew", "known"}, "lay": {"laid", "laid"},
	"lead": {"led", "led"}, "leave": {"left", "left"}, "let": {"let", "let"},
	"lie": {"lay", "lain"}, "lose": {"lost", "lost"}, "make": {"made", "made"},
	"mean": {"meant", "meant"}, "meet": {"met", "met"}, "pay": {"paid", "paid"},
	"put": {"put", "put"}, "read": {"read", "read"}, "ride": {"rode", "ridden"},
	"ring": {"rang", "rung"}, "rise": {"rose", "risen"}, "run": {"ran", "run"},
	"say": {"said", "said"}, "see": {"saw", "seen"}, "seek": {"sought", "sought"},
	"sell": {"sold", "sold"}, "send": {"sent", "sent"}, "set": {"set", "set"},
	"shake": {"shook", "shaken"}, "shoot": {"shot", "shot"}, "sing": {"sang", "sung"},
	"sink": {"sank", "sunk"}, "sit": {"sat", "sat"}, "sleep": {"slept", "slept"},
	"speak": {"spoke", "spoken"}, "spend": {"spent", "spent"}, "spring": {"sprang", "sprung"},
	"stand": {"stood", "stood"}, "steal": {"stole", "stolen"}, "swim": {"swam", "swum"},
	"take": {"took", "taken"}, "teach": {"taught", "taught"}, "tell": {"told", "told"},
	"think": {"thought", "thought"}, "throw": {"threw", "thrown"}, "understand": {"understood", "understood"},
	"wake": {"woke", "woken"}, "wear": {"wore", "worn"}, "win": {"won", "won"},
	"write": {"wrote", "written"},
}

// regularVerbs are base forms used to resolve inflected stems.
var regularVerbs = set(
	"accept", "add", "admit", "agree", "allow", "answer", "appear", "arrive", "ask", "believe",
	"call", "care", "carry", "change", "clean", "close", "consider", "continue", "cook", "cover",
	"create", "cry", "dance", "decide", "develop", "die", "enjoy", "explain", "fill", "finish",
	"follow", "happen", "hate", "help", "hope", "hurry", "include", "jump", "kill", "learn",
	"like", "listen", "live", "look", "love", "marry", "move", "need", "offer", "open",
	"pass", "plan", "play", "prefer", "produce", "raise", "reach", "receive", "remember", "return",
	"save", "seem", "serve", "show", "smile", "start", "stay", "stop", "study", "support",
	"talk", "travel", "try", "turn", "use", "visit", "wait", "walk", "want", "watch",
	"wish", "work", "worry",
)

var closedClass = map[string]string{}

func init() {
	add := func(pos string, words ...string) {
		for _, w := range words {
			closedClass[w] = pos
		}
	}
	add("Pronoun",
		"i", "me", "my", "mine", "myself", "you", "your", "yours", "yourself", "he", "him", "his",
		"himself", "she", "her", "hers", "herself", "it", "its", "itself", "we", "us", "our", "ours",
		"ourselves", "they", "them", "their", "theirs", "themselves", "who", "whom", "whose",
		"someone", "somebody", "something", "anyone", "anything", "everyone", "everything",
		"nobody", "nothing")
	add("Determiner", "a", "an", "the", "this", "that", "these", "those", "each", "every",
		"some", "any", "no", "another", "either", "neither", "all", "both", "which", "what")
	add("Preposition", "about", "above", "across", "after", "against", "along", "among",
		"around", "at", "before", "behind", "below", "beneath", "beside", "between", "beyond",
		"by", "despite", "down", "during", "except", "for", "from", "in", "inside", "into",
		"near", "of", "off", "on", "onto", "out", "over", "past", "since", "through",
		"throughout", "toward", "towards", "under", "until", "up", "upon", "with", "within",
		"without")
	add("Conjunction", "and", "but", "or", "nor", "yet", "so", "because", "although", "though",
		"unless", "while", "whereas", "if", "whether", "when", "whenever", "where", "than")
	add("Particle", "to", "not")
	add("Interjection", "oh", "ah", "wow", "hey", "hello", "hi", "oops", "ouch", "alas",
		"hooray", "yes", "yeah", "okay", "ok")
	add("Adverb", "very", "too", "also", "often", "never", "always", "now", "then", "here",
		"there", "soon", "already", "still", "just", "again", "almost", "quite", "rather",
		"perhaps", "maybe", "ever", "seldom", "well")
	add("Number", "zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
		"nine", "ten", "eleven", "twelve", "twenty", "thirty", "hundred", "thousand", "million",
		"first", "second", "third")
}

var (
	adverbSuffixes    = []string{"ly"}
	adjectiveSuffixes = []string{"ous", "ful", "able", "ible", "ive", "less", "ish", "ic", "al", "est"}
	nounSuffixes      = []string{"tion", "sion", "ment", "ness", "ity", "ship", "hood", "ance", "ence", "ism", "ist", "er", "or"}
	verbSuffixes      = []string{"ize", "ise", "ify", "ate"}
)

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
