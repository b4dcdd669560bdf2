package tutor

import (
	"strings"

	"robotics-tutor-be/pkg/rag/intent"
)

const minQueryWords = 5

type questionFamily struct {
	triggers  []string
	questions []string
}

// Topic families are mutually exclusive, first match wins. Intent families
// stack on top of whichever topic family fired.
var topicFamilies = []questionFamily{
	{
		triggers: []string{"ros", "ros2", "robot operating system"},
		questions: []string{
			"Would you like to know about ROS 2 nodes and topics?",
			"Do you need information about ROS 2 services and actions?",
			"Are you interested in ROS 2 launch files?",
		},
	},
	{
		triggers: []string{"gazebo", "simulation", "simulator"},
		questions: []string{
			"Would you like to learn about Gazebo plugins?",
			"Do you need information about world building in Gazebo?",
			"Are you interested in sensor simulation?",
		},
	},
	{
		triggers: []string{"vla", "vision", "language", "action"},
		questions: []string{
			"Would you like to know about VLA architectures?",
			"Do you need information about multimodal fusion?",
			"Are you interested in VLA training methodologies?",
		},
	},
	{
		triggers: []string{"humanoid", "walking", "locomotion"},
		questions: []string{
			"Would you like to learn about inverse kinematics?",
			"Do you need information about balance control?",
			"Are you interested in gait patterns?",
		},
	},
	{
		triggers: []string{"control", "ai", "learning"},
		questions: []string{
			"Would you like to know about reinforcement learning approaches?",
			"Do you need information about classical control methods?",
			"Are you interested in model predictive control?",
		},
	},
}

var intentFamilies = map[intent.Label][]string{
	intent.TutorRequest: {
		"Would you like me to provide a practical example?",
		"Do you need more details on any specific aspect?",
		"Are there related concepts you'd like me to explain?",
	},
	intent.TechnicalQuestion: {
		"Would you like to see sample code for this?",
		"Do you need information about different approaches?",
		"Are you interested in best practices for this?",
	},
	intent.Comparison: {
		"Would you like me to compare these in more detail?",
		"Do you need information about when to use each approach?",
		"Are there hybrid approaches that combine these methods?",
	},
	intent.ExampleRequest: {
		"Would you like to see more examples?",
		"Do you need examples for different scenarios?",
		"Are you looking for advanced applications of this concept?",
	},
}

// GenerateFollowUps builds the candidate follow-up list for a turn. Callers
// decide how many to surface.
func GenerateFollowUps(query string, intentData *intent.Result) []string {
	var followUps []string
	lowered := strings.ToLower(query)

	for _, family := range topicFamilies {
		if containsAny(lowered, family.triggers...) {
			followUps = append(followUps, family.questions...)
			break
		}
	}

	label := intentData.PrimaryIntent
	if label == intent.Clarification {
		label = intent.TutorRequest
	}
	if questions, ok := intentFamilies[label]; ok {
		followUps = append(followUps, questions...)
	}

	if intentData.Confidence < lowIntentConfidence {
		followUps = append([]string{"Could you provide more details about what you're looking for?"}, followUps...)
	}
	if intentData.QueryLength < minQueryWords {
		followUps = append([]string{"Could you clarify your question further?"}, followUps...)
	}

	if len(followUps) == 0 {
		followUps = []string{
			"Would you like me to elaborate on any part of this?",
			"Do you have any related questions?",
			"Would you like me to provide more resources on this topic?",
		}
	}

	return followUps
}
