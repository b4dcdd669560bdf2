package intent

import (
	"strings"
)

// Label is a coarse classification of what a user message is asking for.
type Label string

const (
	Greeting          Label = "greeting"
	TutorRequest      Label = "tutor_request"
	FollowUp          Label = "follow_up"
	Clarification     Label = "clarification"
	TechnicalQuestion Label = "technical_question"
	Comparison        Label = "comparison"
	ExampleRequest    Label = "example_request"
	Summary           Label = "summary"
	Feedback          Label = "feedback"
	NegativeFeedback  Label = "negative_feedback"
	Navigation        Label = "navigation"
	Help              Label = "help"
	Quit              Label = "quit"

	// General is the fallback when no keyword scores above zero.
	General Label = "general"
)

type catalogueEntry struct {
	label    Label
	keywords []string
}

// catalogue order is load-bearing: on equal scores the earlier entry wins.
var catalogue = []catalogueEntry{
	{Greeting, []string{
		"hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening",
		"morning", "afternoon", "evening", "welcome", "hey there",
	}},
	{TutorRequest, []string{
		"explain", "teach", "learn", "how does", "how do", "can you teach", "help me understand",
		"what is", "what are", "tell me about", "describe", "elaborate on", "break down",
		"walk me through", "guide me on", "educate me on",
	}},
	{FollowUp, []string{
		"why", "how", "more", "continue", "elaborate", "detail", "further", "also", "and",
		"then", "next", "after that", "what happens", "what about", "related to", "connected to",
	}},
	{Clarification, []string{
		"what", "where", "when", "who", "which", "whose", "whom", "why", "how", "explain",
		"define", "meaning", "definition", "clarify", "what do you mean", "can you clarify",
	}},
	{TechnicalQuestion, []string{
		"implement", "code", "function", "method", "algorithm", "architecture", "design",
		"structure", "build", "develop", "create", "make", "construct", "setup", "configure",
	}},
	{Comparison, []string{
		"compare", "difference", "vs", "versus", "similarities", "different", "between",
		"contrast", "better than", "worse than", "advantages", "disadvantages", "pros and cons",
	}},
	{ExampleRequest, []string{
		"example", "sample", "show me", "demonstrate", "illustrate", "give", "provide",
		"like", "such as", "instance", "case", "scenario", "situation", "practice", "exemplify",
	}},
	{Summary, []string{
		"summarize", "summary", "overview", "key points", "main idea", "conclusion",
		"recap", "highlight", "important", "bottom line", "tl;dr", "in summary", "in conclusion",
	}},
	{Feedback, []string{
		"good", "great", "helpful", "thanks", "thank you", "nice", "awesome", "perfect",
		"excellent", "wonderful", "fantastic", "appreciate", "grateful", "well done",
	}},
	{NegativeFeedback, []string{
		"confusing", "unclear", "wrong", "incorrect", "bad", "not helpful", "difficult",
		"frustrating", "hard to understand", "poor", "terrible", "doesn't make sense",
	}},
	{Navigation, []string{
		"next", "previous", "back", "forward", "continue", "go to", "move to", "jump to",
		"skip", "return", "navigate", "switch", "change", "go back", "go forward",
	}},
	{Help, []string{
		"help", "assist", "support", "guide", "instructions", "how to", "tips", "advice",
		"assistance", "support", "directions", "guidance", "tutorials", "resources",
	}},
	{Quit, []string{
		"bye", "goodbye", "exit", "quit", "stop", "end", "finish", "see you", "farewell",
		"later", "take care", "until next time", "adios", "ciao", "au revoir",
	}},
}

// Result is the full classification outcome for one query. It is derived
// purely from the query text and recomputed on every call.
type Result struct {
	Intents       []Label       `json:"intents"`
	PrimaryIntent Label         `json:"primary_intent"`
	IntentScores  map[Label]int `json:"intent_scores"`
	Confidence    float64       `json:"confidence"`
	QueryLength   int           `json:"query_length"`
}

// Classifier maps raw query text to an intent Result via keyword matching.
// It holds no state and is safe for concurrent use.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Detect scores every catalogue label against the query. A keyword occurring
// multiple times counts multiple times, overlapping matches included. The
// primary intent is the highest-scoring label, ties resolved by catalogue
// order; with no match at all it degrades to General.
func (c *Classifier) Detect(query string) *Result {
	lowered := strings.ToLower(strings.TrimSpace(query))
	wordCount := len(strings.Fields(lowered))

	scores := make(map[Label]int)
	var detected []Label
	primary := General
	best := 0
	total := 0

	for _, entry := range catalogue {
		score := 0
		for _, keyword := range entry.keywords {
			score += countOccurrences(lowered, keyword)
		}
		if score == 0 {
			continue
		}
		scores[entry.label] = score
		detected = append(detected, entry.label)
		total += score
		if score > best {
			best = score
			primary = entry.label
		}
	}

	confidence := float64(total) / float64(max(wordCount, 1))
	if confidence > 1.0 {
		confidence = 1.0
	}

	return &Result{
		Intents:       detected,
		PrimaryIntent: primary,
		IntentScores:  scores,
		Confidence:    confidence,
		QueryLength:   wordCount,
	}
}

// countOccurrences counts substring matches including overlapping ones,
// which strings.Count does not.
func countOccurrences(s, sub string) int {
	if sub == "" {
		return 0
	}
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}
