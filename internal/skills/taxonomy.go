package skills

// Taxonomy is the curated list of instructional design and learning
// technology skills offered as suggestions. Freeform entries outside the
// list are accepted as well.
var Taxonomy = []string{
	"Articulate Storyline",
	"Articulate Rise",
	"Adobe Captivate",
	"Camtasia",
	"Vyond",
	"Adobe Photoshop",
	"Adobe Illustrator",
	"Adobe After Effects",
	"Adobe Premiere Pro",
	"Audacity",
	"Figma",
	"Canva",
	"SCORM",
	"xAPI",
	"AICC",
	"cmi5",
	"LMS Administration",
	"Moodle",
	"Canvas LMS",
	"Blackboard",
	"Docebo",
	"Cornerstone OnDemand",
	"TalentLMS",
	"ADDIE",
	"SAM",
	"Agile Development",
	"Design Thinking",
	"Backward Design",
	"Bloom's Taxonomy",
	"Kirkpatrick Evaluation",
	"Gagne's Nine Events",
	"Merrill's Principles",
	"Action Mapping",
	"Learning Experience Design",
	"Curriculum Development",
	"Instructional Design",
	"Needs Analysis",
	"Task Analysis",
	"Learner Analysis",
	"Storyboarding",
	"Scriptwriting",
	"Technical Writing",
	"Copywriting",
	"Microlearning",
	"Gamification",
	"Scenario-Based Learning",
	"Simulation Design",
	"Video Production",
	"Audio Production",
	"Motion Graphics",
	"Accessibility (WCAG)",
	"Section 508 Compliance",
	"Universal Design for Learning",
	"Adult Learning Theory",
	"Cognitive Load Theory",
	"Facilitation",
	"Virtual Training Delivery",
	"Train the Trainer",
	"Project Management",
	"Stakeholder Management",
	"Quality Assurance",
	"Localization",
	"HTML",
	"CSS",
	"JavaScript",
}
