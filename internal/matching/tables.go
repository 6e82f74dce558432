package matching

// SkillDefinition is one row of the weighted skill table. RequiredTerms gate
// the row: when none of them appears in the posting the row contributes to
// the maximum possible score only. Primary synonyms score full weight,
// related synonyms half weight.
type SkillDefinition struct {
	Name          string
	Primary       []string
	Related       []string
	Weight        float64
	RequiredTerms []string
}

var skillTable = []SkillDefinition{
	// Core frameworks
	{
		Name:          "React",
		Primary:       []string{"react", "reactjs", "react.js"},
		Related:       []string{"javascript", "components", "jsx"},
		Weight:        8,
		RequiredTerms: []string{"react"},
	},
	{
		Name:          "Next.js",
		Primary:       []string{"next.js", "nextjs", "next-js"},
		Related:       []string{"ssr", "server side rendering", "static site generation", "app router"},
		Weight:        6,
		RequiredTerms: []string{"next.js", "nextjs"},
	},
	{
		Name:          "Node.js",
		Primary:       []string{"node", "node.js", "nodejs", "node js"},
		Related:       []string{"backend", "server", "express"},
		Weight:        7,
		RequiredTerms: []string{"node"},
	},
	{
		Name:          "Express.js",
		Primary:       []string{"express", "express.js", "expressjs"},
		Related:       []string{"rest api", "restful api", "api"},
		Weight:        6,
		RequiredTerms: []string{"express"},
	},
	{
		Name:          "MongoDB",
		Primary:       []string{"mongodb", "mongo db", "mongo"},
		Related:       []string{"nosql", "database", "mongoose"},
		Weight:        6,
		RequiredTerms: []string{"mongodb", "mongo"},
	},
	// Frontend technologies
	{
		Name:          "TypeScript",
		Primary:       []string{"typescript", "ts"},
		Related:       []string{"type safety", "static typing"},
		Weight:        5,
		RequiredTerms: []string{"typescript", "ts"},
	},
	{
		Name:          "JavaScript",
		Primary:       []string{"javascript", "es6", "es6+", "ecmascript"},
		Related:       []string{"js", "vanilla js"},
		Weight:        4,
		RequiredTerms: []string{"javascript", "js"},
	},
	{
		Name:          "HTML5",
		Primary:       []string{"html", "html5"},
		Related:       []string{"semantic html", "dom"},
		Weight:        2,
		RequiredTerms: []string{"html"},
	},
	{
		Name:          "CSS3",
		Primary:       []string{"css", "css3"},
		Related:       []string{"styling", "responsive design"},
		Weight:        2,
		RequiredTerms: []string{"css"},
	},
	{
		Name:          "Tailwind CSS",
		Primary:       []string{"tailwind", "tailwind css", "tailwindcss"},
		Related:       []string{"utility-first css"},
		Weight:        3,
		RequiredTerms: []string{"tailwind"},
	},
	{
		Name:          "SASS/SCSS",
		Primary:       []string{"sass", "scss", "sass css"},
		Related:       []string{"css preprocessor"},
		Weight:        2,
		RequiredTerms: []string{"sass", "scss"},
	},
	// State management
	{
		Name:          "Redux",
		Primary:       []string{"redux", "redux toolkit", "reduxjs"},
		Related:       []string{"state management", "global state"},
		Weight:        5,
		RequiredTerms: []string{"redux"},
	},
	{
		Name:          "React Query",
		Primary:       []string{"react query", "tanstack query"},
		Related:       []string{"data fetching", "server state"},
		Weight:        4,
		RequiredTerms: []string{"react query", "tanstack query"},
	},
	{
		Name:          "Context API",
		Primary:       []string{"context api", "react context"},
		Related:       []string{"state management", "react hooks"},
		Weight:        3,
		RequiredTerms: []string{"context api", "react context"},
	},
	{
		Name:          "Zustand",
		Primary:       []string{"zustand"},
		Related:       []string{"state management"},
		Weight:        3,
		RequiredTerms: []string{"zustand"},
	},
	{
		Name:          "MobX",
		Primary:       []string{"mobx"},
		Related:       []string{"state management"},
		Weight:        3,
		RequiredTerms: []string{"mobx"},
	},
	// Testing
	{
		Name:          "Jest",
		Primary:       []string{"jest"},
		Related:       []string{"unit testing", "testing framework"},
		Weight:        4,
		RequiredTerms: []string{"jest"},
	},
	{
		Name:          "React Testing Library",
		Primary:       []string{"@testing-library/react", "react testing library", "rtl"},
		Related:       []string{"component testing", "testing"},
		Weight:        4,
		RequiredTerms: []string{"testing-library", "rtl"},
	},
	{
		Name:          "Cypress",
		Primary:       []string{"cypress", "e2e testing"},
		Related:       []string{"end-to-end testing", "integration testing"},
		Weight:        3,
		RequiredTerms: []string{"cypress"},
	},
	{
		Name:          "Mocha/Chai",
		Primary:       []string{"mocha", "chai"},
		Related:       []string{"testing framework"},
		Weight:        2,
		RequiredTerms: []string{"mocha", "chai"},
	},
	// DevOps & cloud
	{
		Name:          "GitHub",
		Primary:       []string{"github", "git hub"},
		Related:       []string{"git", "version control", "ci/cd", "github actions"},
		Weight:        4,
		RequiredTerms: []string{"github"},
	},
	{
		Name:          "Git",
		Primary:       []string{"git"},
		Related:       []string{"version control", "repository", "branch", "commit", "merge", "pull request"},
		Weight:        3,
		RequiredTerms: []string{"git"},
	},
	{
		Name:          "Docker",
		Primary:       []string{"docker", "docker container"},
		Related:       []string{"containerization", "kubernetes", "container"},
		Weight:        5,
		RequiredTerms: []string{"docker"},
	},
	{
		Name:          "CI/CD",
		Primary:       []string{"ci/cd", "cicd", "ci cd", "continuous integration", "continuous deployment"},
		Related:       []string{"jenkins", "gitlab ci", "github actions", "pipeline"},
		Weight:        4,
		RequiredTerms: []string{"ci/cd", "cicd", "continuous integration", "continuous deployment"},
	},
	{
		Name:          "AWS",
		Primary:       []string{"aws", "amazon web services"},
		Related:       []string{"ec2", "s3", "lambda", "dynamodb", "rds", "cloud"},
		Weight:        4,
		RequiredTerms: []string{"aws", "amazon web services"},
	},
	{
		Name:          "Cloud Platforms",
		Primary:       []string{"azure", "gcp", "google cloud", "firebase"},
		Related:       []string{"cloud hosting", "serverless"},
		Weight:        3,
		RequiredTerms: []string{"azure", "gcp", "firebase"},
	},
	{
		Name:          "Kubernetes",
		Primary:       []string{"kubernetes", "k8s"},
		Related:       []string{"container orchestration", "docker", "pods"},
		Weight:        3,
		RequiredTerms: []string{"kubernetes", "k8s"},
	},
	// Build tools & bundlers
	{
		Name:          "Webpack",
		Primary:       []string{"webpack"},
		Related:       []string{"bundler", "build tool", "module bundler"},
		Weight:        3,
		RequiredTerms: []string{"webpack"},
	},
	{
		Name:          "Vite",
		Primary:       []string{"vite"},
		Related:       []string{"build tool", "dev server", "bundler"},
		Weight:        3,
		RequiredTerms: []string{"vite"},
	},
	{
		Name:          "Babel",
		Primary:       []string{"babel"},
		Related:       []string{"transpiler", "compiler"},
		Weight:        2,
		RequiredTerms: []string{"babel"},
	},
	// APIs & data
	{
		Name:          "REST API",
		Primary:       []string{"rest api", "restful api"},
		Related:       []string{"http", "restful", "api integration"},
		Weight:        5,
		RequiredTerms: []string{"rest api", "restful"},
	},
	{
		Name:          "GraphQL",
		Primary:       []string{"graphql"},
		Related:       []string{"api", "query language", "apollo"},
		Weight:        4,
		RequiredTerms: []string{"graphql"},
	},
	{
		Name:          "REST",
		Primary:       []string{"rest"},
		Related:       []string{"http methods", "api endpoints"},
		Weight:        3,
		RequiredTerms: []string{"rest"},
	},
	{
		Name:          "Axios",
		Primary:       []string{"axios"},
		Related:       []string{"http client", "api calls", "fetch"},
		Weight:        3,
		RequiredTerms: []string{"axios"},
	},
	{
		Name:          "Fetch API",
		Primary:       []string{"fetch", "fetch api"},
		Related:       []string{"http requests", "async/await"},
		Weight:        2,
		RequiredTerms: []string{"fetch"},
	},
	// Authentication
	{
		Name:          "JWT",
		Primary:       []string{"jwt", "json web token", "jsonwebtoken"},
		Related:       []string{"authentication", "token", "oauth"},
		Weight:        4,
		RequiredTerms: []string{"jwt", "json web token"},
	},
	{
		Name:          "OAuth",
		Primary:       []string{"oauth", "oauth2", "oauth 2.0"},
		Related:       []string{"authentication", "authorization", "social login"},
		Weight:        3,
		RequiredTerms: []string{"oauth"},
	},
	{
		Name:          "Authentication",
		Primary:       []string{"authentication", "auth", "login"},
		Related:       []string{"user auth", "session management"},
		Weight:        3,
		RequiredTerms: []string{"authentication", "auth"},
	},
	// Other frameworks & libraries
	{
		Name:          "React Router",
		Primary:       []string{"react router", "react-router"},
		Related:       []string{"routing", "navigation"},
		Weight:        4,
		RequiredTerms: []string{"react router", "react-router"},
	},
	{
		Name:          "Material UI",
		Primary:       []string{"material ui", "mui", "material-design"},
		Related:       []string{"ui framework", "component library"},
		Weight:        3,
		RequiredTerms: []string{"material ui", "mui"},
	},
	{
		Name:          "Ant Design",
		Primary:       []string{"ant design", "antd"},
		Related:       []string{"ui library", "component library"},
		Weight:        3,
		RequiredTerms: []string{"ant design", "antd"},
	},
	{
		Name:          "Styled Components",
		Primary:       []string{"styled-components", "styled components"},
		Related:       []string{"css-in-js", "component styling"},
		Weight:        3,
		RequiredTerms: []string{"styled-components", "styled components"},
	},
	{
		Name:          "Form Handling",
		Primary:       []string{"react-hook-form", "formik", "redux-form"},
		Related:       []string{"form validation", "form management"},
		Weight:        3,
		RequiredTerms: []string{"react-hook-form", "formik"},
	},
	// Performance & optimization
	{
		Name:          "Performance Optimization",
		Primary:       []string{"performance optimization", "web performance", "load time"},
		Related:       []string{"lazy loading", "code splitting", "memoization"},
		Weight:        4,
		RequiredTerms: []string{"performance", "optimization", "optimisation"},
	},
	{
		Name:          "Web Vitals",
		Primary:       []string{"web vitals", "lcp", "cls", "fid"},
		Related:       []string{"performance metrics", "core web vitals"},
		Weight:        2,
		RequiredTerms: []string{"web vitals", "lcp", "cls"},
	},
	// Agile & collaboration
	{
		Name:          "Agile/Scrum",
		Primary:       []string{"agile", "scrum", "sprint"},
		Related:       []string{"jira", "standup", "kanban"},
		Weight:        2,
		RequiredTerms: []string{"agile", "scrum"},
	},
	{
		Name:          "Jira",
		Primary:       []string{"jira"},
		Related:       []string{"project management", "issue tracking"},
		Weight:        1,
		RequiredTerms: []string{"jira"},
	},
}

// coreMernSkills is the fixed set of technologies a combined-stack title
// must back with primary matches.
var coreMernSkills = map[string]bool{
	"React":      true,
	"Node.js":    true,
	"Express.js": true,
	"MongoDB":    true,
}

// disqualifyingChips are competing-stack markers. Two or more of them among
// the posting's tags disqualify it regardless of score.
var disqualifyingChips = []string{
	"angular", "vue", "vue.js", "vuejs", "php", ".net", "django", "laravel",
	"spring", "j2ee", "hibernate", "jms", "jpa", "sybase", "memsql",
}

// javaStackTerms mark a Java/J2EE role when enough of them appear in the
// description as whole words.
var javaStackTerms = []string{"java", "j2ee", "spring", "hibernate", "jms", "jpa"}

type bonusKeyword struct {
	Keyword string
	Bonus   float64
}

var bonusKeywords = []bonusKeyword{
	// React specific
	{"react hooks", 1.5},
	{"functional components", 1.2},
	{"performance optimization", 1.4},
	{"react context", 1.3},
	{"memoization", 1.2},
	{"lazy loading", 1.1},
	{"code splitting", 1.0},
	{"react router", 1.2},
	{"react query", 1.3},
	{"useeffect", 1.0},
	{"usestate", 1.0},
	{"custom hooks", 1.4},
	{"higher order components", 1.2},
	{"props drilling", 0.8},
	{"virtual dom", 1.0},
	{"fiber", 1.0},
	// Node/Express specific
	{"express.js", 1.3},
	{"expressjs", 1.3},
	{"rest api", 1.4},
	{"restful api", 1.4},
	{"api development", 1.3},
	{"api integration", 1.2},
	{"authentication", 1.3},
	{"jwt authentication", 1.4},
	{"oauth", 1.2},
	{"middleware", 1.1},
	{"mongoose", 1.3},
	{"mongodb", 1.3},
	{"nosql", 1.2},
	{"node.js", 1.3},
	{"async await", 1.0},
	{"promises", 1.0},
	{"event loop", 1.1},
	// DevOps/cloud
	{"github", 1.2},
	{"git", 1.0},
	{"docker", 1.4},
	{"docker container", 1.5},
	{"ci/cd", 1.4},
	{"cicd", 1.4},
	{"continuous integration", 1.3},
	{"continuous deployment", 1.3},
	{"aws", 1.3},
	{"amazon web services", 1.3},
	{"ec2", 1.2},
	{"s3", 1.1},
	{"lambda", 1.2},
	{"kubernetes", 1.3},
	{"k8s", 1.2},
	{"jenkins", 1.2},
	{"github actions", 1.3},
	{"pipeline", 1.1},
	// State management
	{"redux", 1.4},
	{"redux toolkit", 1.5},
	{"zustand", 1.2},
	{"mobx", 1.2},
	{"context api", 1.2},
	// Testing
	{"jest", 1.3},
	{"unit testing", 1.2},
	{"integration testing", 1.3},
	{"e2e testing", 1.3},
	{"cypress", 1.2},
	{"testing library", 1.2},
	// TypeScript/tools
	{"typescript", 1.3},
	{"next.js", 1.4},
	{"nextjs", 1.4},
	{"webpack", 1.1},
	{"vite", 1.2},
	{"tailwind css", 1.2},
	{"graphql", 1.3},
}

// keywordTriplets each add a fixed bonus of 1.0 when all three terms appear
// in the description. Their count also pads the raw-formula denominator.
var keywordTriplets = [][3]string{
	// MERN stack combinations
	{"react", "javascript", "frontend"},
	{"react", "typescript", "frontend"},
	{"react", "hooks", "components"},
	{"react", "performance", "optimization"},
	{"frontend", "react", "developer"},
	// Node/Express combinations
	{"node", "express", "api"},
	{"node", "mongodb", "backend"},
	{"express", "mongodb", "rest api"},
	{"node.js", "rest api", "backend"},
	{"nodejs", "express", "mongoose"},
	// DevOps combinations
	{"docker", "container", "deployment"},
	{"ci/cd", "github", "pipeline"},
	{"aws", "ec2", "cloud"},
	{"docker", "kubernetes", "orchestration"},
	{"github", "actions", "ci/cd"},
	{"docker", "ci/cd", "pipeline"},
	// Fullstack combinations
	{"react", "node", "fullstack"},
	{"react", "node.js", "full stack"},
	{"mern", "stack", "developer"},
	{"frontend", "backend", "api"},
	{"javascript", "node", "react"},
}
