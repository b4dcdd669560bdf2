package response

// Fixed reply text for intents that never reach the language model, plus the
// fallback strings used when generation degrades.
const (
	GreetingReply = "Hello! I'm your Physical AI & Humanoid Robotics assistant. " +
		"How can I help you with robotics, AI, or humanoid systems today?"

	HelpReply = "I'm here to help you learn about Physical AI & Humanoid Robotics! " +
		"You can ask me about ROS 2, simulation platforms (Gazebo, Isaac Sim, Unity), " +
		"Vision-Language-Action systems, hardware integration, AI control, or humanoid design. " +
		"What specific topic would you like to explore?"

	FarewellReply = "Thank you for using the Physical AI & Humanoid Robotics assistant. " +
		"Feel free to return anytime you have questions about robotics and AI!"

	// ProcessingFallback replaces the answer when the model call fails.
	ProcessingFallback = "I encountered an issue while processing your request. Could you please rephrase your question?"

	// GeneralKnowledgeCaveat is appended to model answers when retrieval
	// support is weak.
	GeneralKnowledgeCaveat = "\n\n⚠️ Note: The information provided is based on general knowledge. " +
		"For more specific details, please provide additional context."

	explainTemplate    = "Based on the context provided, I can help explain this concept in detail. %s"
	exampleTemplate    = "Here's an example related to your query: %s"
	comparisonTemplate = "Comparing concepts related to your query: %s"

	shortQuestionTemplate = "I received your question: '%s'. Could you please provide more details " +
		"so I can give you a more comprehensive answer about Physical AI & Humanoid Robotics?"
	shortStatementTemplate = "I received your input: '%s'. Could you please clarify what specifically " +
		"you'd like to know about Physical AI & Humanoid Robotics? " +
		"For example, you could ask 'What is %s?' or 'How does %s work?'"
)
