package resolve

// DefaultOverrides returns the hand-authored bundles for flagship courses. The map is
// freshly allocated on every call.
func DefaultOverrides() map[int]Builder {
	return map[int]Builder{
		1: fixed(demo{
			Kind:        "reactive_agent",
			Theory:      "intro_agents",
			DemoTitle:   "Simple Reactive Agent Simulator",
			Description: "Interactive agent that responds to environmental inputs",
		}, "Introduction to AI Agents"),
		2: fixed(demo{
			Kind:        "prompt_playground",
			Theory:      "prompt_engineering",
			DemoTitle:   "Prompt Engineering Playground",
			Description: "Experiment with different prompting techniques",
		}, "Prompt Engineering Fundamentals"),
		3: fixed(demo{
			Kind:        "chatbot",
			Theory:      "default",
			DemoTitle:   "Chatbot Conversation Simulator",
			Description: "Build a conversational agent with memory",
			Focus:       "A chatbot keeps the running conversation as state and answers each turn from it, which is the smallest useful form of agent memory.",
		}, "Building a Simple Chatbot"),
		4: fixed(demo{
			Kind:        "state_tracker",
			Theory:      "default",
			DemoTitle:   "State Management Visualizer",
			Description: "Track and visualize agent state changes",
			Focus:       "Every action an agent takes moves it between explicit states; recording those transitions makes its behavior inspectable.",
		}, "Agent State Management"),
		5: fixed(demo{
			Kind:        "agent_chain",
			Theory:      "default",
			DemoTitle:   "Agent Chain Pipeline Builder",
			Description: "Create and execute multi-step agent chains",
			Focus:       "Chains pass the output of one step into the next, so each step stays small and the pipeline as a whole can be timed and debugged step by step.",
		}, "Agent Chains and Pipelines"),
		46: fixed(demo{
			Kind:        "multi_agent_collab",
			Theory:      "default",
			DemoTitle:   "Multi-Agent Collaboration System",
			Description: "Simulate multiple agents working together on tasks",
			Focus:       "Planner, executor, reviewer and optimizer roles split one task between agents that report progress independently and finish at different times.",
		}, "Multi-Agent Collaboration"),
	}
}

// DefaultCategories returns the tag cascade in precedence order. A course whose tags
// match several categories resolves through the earliest one.
func DefaultCategories() []Category {
	return []Category{
		{
			Name:     "classification",
			Keywords: []string{"classification", "sentiment"},
			Build: forRecord(demo{
				Kind:   "classifier",
				Theory: "default",
				Focus:  "Classification agents map free text onto a fixed set of labels and report how confident they are in the choice.",
			}),
		},
		{
			Name:     "retrieval",
			Keywords: []string{"rag", "retrieval", "search"},
			Build: forRecord(demo{
				Kind:   "retrieval",
				Theory: "default",
				Focus:  "Retrieval ranks stored documents against a query and hands the best matches to the agent as context.",
			}),
		},
		{
			Name:     "collaboration",
			Keywords: []string{"multi-agent", "collaboration"},
			Build: forRecord(demo{
				Kind:   "collaboration",
				Theory: "default",
				Focus:  "Collaborating agents divide a task, work on their parts in parallel and combine the results.",
			}),
		},
		{
			Name:     "codegen",
			Keywords: []string{"code", "programming"},
			Build: forRecord(demo{
				Kind:   "codegen",
				Theory: "default",
				Focus:  "Code generation turns a task description into source code that can be read, measured and run.",
			}),
		},
		{
			Name:     "memory",
			Keywords: []string{"memory", "storage"},
			Build: forRecord(demo{
				Kind:   "memory_store",
				Theory: "default",
				Focus:  "Agent memory stores facts under keys so that later steps can retrieve what earlier steps learned.",
			}),
		},
	}
}
