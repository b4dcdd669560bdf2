package tutor

import (
	"strings"

	"robotics-tutor-be/pkg/rag/intent"
)

const lowIntentConfidence = 0.3

const missingContextNote = "\n\n⚠️ **Note:** The information provided is based on general knowledge " +
	"as the specific context wasn't found in our knowledge base. " +
	"For more precise information, please provide additional details."

// EnhanceAnswer layers pedagogical annotations onto a raw answer when tutor
// mode is on. The rules are independent and may all fire on the same answer:
// an intent-keyed annotation, a low-confidence caveat, and exactly one
// encouragement suffix chosen by scanning the query.
func EnhanceAnswer(answer, query string, tutorMode bool, intentData *intent.Result) string {
	if !tutorMode {
		return answer
	}

	enhanced := answer

	switch intentData.PrimaryIntent {
	case intent.TutorRequest, intent.Clarification:
		enhanced = "🎯 **Teaching Point:** " + enhanced
	case intent.ExampleRequest:
		enhanced += "\n\n🔍 **Example:** I've provided the requested example. Would you like to see additional examples or variations?"
	case intent.Comparison:
		enhanced += "\n\n📊 **Comparison Insight:** The key differences have been highlighted above for better understanding."
	case intent.Summary:
		enhanced = "📋 **Summary:** " + enhanced
	case intent.TechnicalQuestion:
		enhanced += "\n\n⚙️ **Technical Detail:** This is a technical implementation detail that's important for practical applications."
	}

	if intentData.Confidence < lowIntentConfidence {
		enhanced += missingContextNote
	}

	enhanced += encouragementFor(query)

	return enhanced
}

// encouragementFor picks one tutor suffix by keyword family, first match
// wins.
func encouragementFor(query string) string {
	lowered := strings.ToLower(query)

	switch {
	case containsAny(lowered, "help", "understand", "explain"):
		return "\n\n🎓 **Tutor Note:** Great question! This concept builds upon previous topics. " +
			"Remember to practice what you've learned to reinforce your understanding."
	case containsAny(lowered, "difficult", "hard", "challenging"):
		return "\n\n💪 **Encouragement:** Don't worry! This is indeed challenging material. " +
			"Take your time to understand the fundamentals before moving to more complex aspects."
	case containsAny(lowered, "practice", "exercise", "problem"):
		return "\n\n📝 **Practice Tip:** Try implementing this concept with a simple example first, then gradually increase complexity."
	default:
		return "\n\n🎓 **Tutor Tip:** Understanding this concept is crucial for mastering Physical AI & Humanoid Robotics. " +
			"Feel free to ask follow-up questions or request practical examples!"
	}
}

func containsAny(s string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
