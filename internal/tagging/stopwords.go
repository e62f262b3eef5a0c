// Package tagging derives a small set of descriptive tags for saved content.
// Every function here is pure: output depends only on the input and the
// static rule tables declared in this package.
package tagging

import "strings"

// stopwords holds English function words and high-frequency verbs in their
// base, third-person, gerund and past forms. Entries are lowercase.
var stopwords = buildSet(
	// Articles, determiners, pronouns
	"a", "an", "the", "this", "that", "these", "those", "some", "any", "each",
	"every", "either", "neither", "such", "what", "which", "whose", "whom",
	"who", "whoever", "whatever", "i", "me", "my", "mine", "myself", "you",
	"your", "yours", "yourself", "yourselves", "he", "him", "his", "himself",
	"she", "her", "hers", "herself", "it", "its", "itself", "we", "us", "our",
	"ours", "ourselves", "they", "them", "their", "theirs", "themselves",
	"other", "others", "another", "something", "anything", "nothing",
	"everything", "someone", "anyone", "everyone", "nobody", "somebody",

	// Prepositions and conjunctions
	"about", "above", "across", "after", "against", "along", "among", "around",
	"at", "before", "behind", "below", "beneath", "beside", "besides",
	"between", "beyond", "but", "by", "despite", "down", "during", "except",
	"for", "from", "in", "inside", "into", "like", "near", "of", "off", "on",
	"onto", "out", "outside", "over", "past", "since", "through", "throughout",
	"till", "to", "toward", "towards", "under", "underneath", "until", "unto",
	"up", "upon", "with", "within", "without", "and", "or", "nor", "so", "yet",
	"because", "although", "though", "while", "whereas", "unless", "whether",
	"if", "than", "then", "once", "where", "when", "whenever", "wherever",
	"however", "therefore", "thus", "hence", "meanwhile", "otherwise",

	// Auxiliary and modal verbs
	"am", "is", "are", "was", "were", "be", "been", "being", "have", "has",
	"had", "having", "do", "does", "did", "doing", "done", "will", "would",
	"shall", "should", "can", "could", "may", "might", "must", "ought",

	// Common adverbs and fillers
	"not", "no", "yes", "very", "too", "also", "just", "only", "even", "still",
	"already", "almost", "always", "never", "often", "sometimes", "usually",
	"really", "quite", "rather", "perhaps", "maybe", "here", "there", "now",
	"again", "ever", "more", "most", "less", "least", "much", "many", "few",
	"several", "both", "all", "own", "same", "how", "why", "well", "back",
	"away", "enough", "instead", "actually", "basically", "simply", "today",
	"tomorrow", "yesterday", "things", "thing", "stuff", "pretty",
	"great", "good", "better", "best", "first", "last", "next", "new", "old",

	// High-frequency verbs: base, 3rd person, gerund, past
	"get", "gets", "getting", "got", "gotten",
	"make", "makes", "making", "made",
	"go", "goes", "going", "went", "gone",
	"know", "knows", "knowing", "knew", "known",
	"take", "takes", "taking", "took", "taken",
	"see", "sees", "seeing", "saw", "seen",
	"come", "comes", "coming", "came",
	"think", "thinks", "thinking", "thought",
	"look", "looks", "looking", "looked",
	"want", "wants", "wanting", "wanted",
	"give", "gives", "giving", "gave", "given",
	"use", "uses", "using", "used",
	"find", "finds", "finding", "found",
	"tell", "tells", "telling", "told",
	"ask", "asks", "asking", "asked",
	"work", "works", "working", "worked",
	"seem", "seems", "seeming", "seemed",
	"feel", "feels", "feeling", "felt",
	"try", "tries", "trying", "tried",
	"leave", "leaves", "leaving", "left",
	"call", "calls", "calling", "called",
	"keep", "keeps", "keeping", "kept",
	"let", "lets", "letting",
	"begin", "begins", "beginning", "began", "begun",
	"help", "helps", "helping", "helped",
	"show", "shows", "showing", "showed", "shown",
	"hear", "hears", "hearing", "heard",
	"play", "plays", "playing", "played",
	"run", "runs", "running", "ran",
	"move", "moves", "moving", "moved",
	"live", "lives", "living", "lived",
	"believe", "believes", "believing", "believed",
	"bring", "brings", "bringing", "brought",
	"happen", "happens", "happening", "happened",
	"write", "writes", "writing", "wrote", "written",
	"provide", "provides", "providing", "provided",
	"stand", "stands", "standing", "stood",
	"lose", "loses", "losing", "lost",
	"meet", "meets", "meeting", "met",
	"include", "includes", "including", "included",
	"continue", "continues", "continuing", "continued",
	"set", "sets", "setting",
	"learn", "learns", "learned", "learnt",
	"change", "changes", "changing", "changed",
	"lead", "leads", "leading", "led",
	"understand", "understands", "understanding", "understood",
	"watch", "watches", "watching", "watched",
	"follow", "follows", "following", "followed",
	"stop", "stops", "stopping", "stopped",
	"create", "creates", "creating", "created",
	"speak", "speaks", "speaking", "spoke", "spoken",
	"read", "reads", "reading",
	"allow", "allows", "allowing", "allowed",
	"add", "adds", "adding", "added",
	"spend", "spends", "spending", "spent",
	"grow", "grows", "growing", "grew", "grown",
	"open", "opens", "opening", "opened",
	"walk", "walks", "walking", "walked",
	"offer", "offers", "offering", "offered",
	"remember", "remembers", "remembering", "remembered",
	"consider", "considers", "considering", "considered",
	"appear", "appears", "appearing", "appeared",
	"buy", "buys", "buying", "bought",
	"wait", "waits", "waiting", "waited",
	"serve", "serves", "serving", "served",
	"send", "sends", "sending", "sent",
	"expect", "expects", "expecting", "expected",
	"build", "builds", "building", "built",
	"stay", "stays", "staying", "stayed",
	"fall", "falls", "falling", "fell", "fallen",
	"reach", "reaches", "reaching", "reached",
	"remain", "remains", "remaining", "remained",
	"suggest", "suggests", "suggesting", "suggested",
	"raise", "raises", "raising", "raised",
	"pass", "passes", "passing", "passed",
	"require", "requires", "requiring", "required",
	"report", "reports", "reporting", "reported",
	"decide", "decides", "deciding", "decided",
	"pull", "pulls", "pulling", "pulled",
	"need", "needs", "needing", "needed",
	"mean", "means", "meaning", "meant",
	"put", "puts", "putting",
	"say", "says", "saying", "said",
	"turn", "turns", "turning", "turned",
	"start", "starts", "starting", "started",
	"hold", "holds", "holding", "held",
	"check", "checks", "checking", "checked",
	"share", "shares", "sharing", "shared",
	"save", "saves", "saving", "saved",
	"likes", "liking", "liked",
	"love", "loves", "loving", "loved",
	"become", "becomes", "becoming", "became",
	"click", "clicks", "clicking", "clicked",
)

// IsStopword reports whether word is a common non-content word.
// Matching is case-insensitive and exact.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

func buildSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
