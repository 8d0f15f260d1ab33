package catalog

// Defaults returns the stock catalog used by devcap-seed. IDs are stable
// slugs so that save rows and upgrade targets survive reseeding.
func Defaults() Catalog {
	return Catalog{
		Businesses: []Business{
			{ID: "freelance-gig", Name: "Freelance Gig", Description: "Take on small coding projects for clients", BaseCost: 10, BaseProduction: 1, CostMultiplier: 1.15, UnlockRequirement: 0},
			{ID: "saas-tool", Name: "SaaS Tool", Description: "A subscription-based software product", BaseCost: 100, BaseProduction: 5, CostMultiplier: 1.15, UnlockRequirement: 200},
			{ID: "startup-inc", Name: "Startup Inc.", Description: "Your very own tech startup", BaseCost: 1000, BaseProduction: 20, CostMultiplier: 1.15, UnlockRequirement: 1000},
			{ID: "dev-agency", Name: "Dev Agency", Description: "A team of developers working on client projects", BaseCost: 10000, BaseProduction: 100, CostMultiplier: 1.15, UnlockRequirement: 5000},
			{ID: "code-empire", Name: "Code Empire", Description: "A global tech conglomerate", BaseCost: 100000, BaseProduction: 500, CostMultiplier: 1.15, UnlockRequirement: 50000},
			{ID: "mobile-studio", Name: "Mobile App Studio", Description: "Develop and publish mobile applications", BaseCost: 250000, BaseProduction: 1000, CostMultiplier: 1.2, UnlockRequirement: 100000},
			{ID: "game-studio", Name: "Game Development Studio", Description: "Create and sell video games", BaseCost: 500000, BaseProduction: 2000, CostMultiplier: 1.2, UnlockRequirement: 250000},
			{ID: "ai-lab", Name: "AI Research Lab", Description: "Advanced AI solutions for enterprises", BaseCost: 1000000, BaseProduction: 5000, CostMultiplier: 1.25, UnlockRequirement: 500000},
			{ID: "blockchain-venture", Name: "Blockchain Venture", Description: "Cutting-edge blockchain applications", BaseCost: 5000000, BaseProduction: 10000, CostMultiplier: 1.25, UnlockRequirement: 1000000},
			{ID: "global-tech-corp", Name: "Global Tech Corp", Description: "Multinational technology corporation", BaseCost: 10000000, BaseProduction: 25000, CostMultiplier: 1.3, UnlockRequirement: 5000000},
			{ID: "space-tech", Name: "Space Tech Enterprise", Description: "Software for space exploration", BaseCost: 50000000, BaseProduction: 100000, CostMultiplier: 1.3, UnlockRequirement: 10000000},
		},
		TeamMembers: []TeamMember{
			{ID: "frontend-dev", Name: "Frontend Dev", Description: "Builds interfaces and ships pixels", BaseCost: 50, BaseProduction: 2, CostMultiplier: 1.15, UnlockRequirement: 100},
			{ID: "qa-tester", Name: "QA Tester", Description: "Finds the bugs before your users do", BaseCost: 100, BaseProduction: 3, CostMultiplier: 1.15, UnlockRequirement: 300},
			{ID: "backend-dev", Name: "Backend Dev", Description: "Keeps the servers humming", BaseCost: 200, BaseProduction: 5, CostMultiplier: 1.15, UnlockRequirement: 500},
			{ID: "ai-assistant", Name: "AI Assistant", Description: "Autocompletes entire features", BaseCost: 500, BaseProduction: 10, CostMultiplier: 1.15, UnlockRequirement: 1000},
			{ID: "ux-designer", Name: "UX Designer", Description: "Makes everything usable and pretty", BaseCost: 300, BaseProduction: 7, CostMultiplier: 1.15, UnlockRequirement: 1500},
			{ID: "devops-engineer", Name: "DevOps Engineer", Description: "Automates the deployment pipeline", BaseCost: 800, BaseProduction: 15, CostMultiplier: 1.15, UnlockRequirement: 2000},
			{ID: "mobile-dev", Name: "Mobile Developer", Description: "Ships to both app stores", BaseCost: 1000, BaseProduction: 20, CostMultiplier: 1.2, UnlockRequirement: 3000},
			{ID: "data-scientist", Name: "Data Scientist", Description: "Turns logs into insight", BaseCost: 1500, BaseProduction: 30, CostMultiplier: 1.2, UnlockRequirement: 5000},
			{ID: "security-specialist", Name: "Security Specialist", Description: "Patches holes before they are exploited", BaseCost: 2000, BaseProduction: 40, CostMultiplier: 1.2, UnlockRequirement: 7500},
			{ID: "tech-lead", Name: "Technical Lead", Description: "Multiplies the whole team's output", BaseCost: 5000, BaseProduction: 75, CostMultiplier: 1.25, UnlockRequirement: 10000},
			{ID: "cloud-architect", Name: "Cloud Architect", Description: "Designs systems that scale", BaseCost: 10000, BaseProduction: 150, CostMultiplier: 1.25, UnlockRequirement: 25000},
			{ID: "cto", Name: "CTO", Description: "Executive-grade engineering leverage", BaseCost: 50000, BaseProduction: 500, CostMultiplier: 1.3, UnlockRequirement: 100000},
		},
		Upgrades: []Upgrade{
			{ID: "mechanical-keyboard", Name: "Mechanical Keyboard", Description: "Doubles your clicking efficiency", Cost: 500, Type: UpgradeClick, Multiplier: 2, UnlockRequirement: 100},
			{ID: "typescript-mastery", Name: "TypeScript Mastery", Description: "Increases all business production by 50%", Cost: 2000, Type: UpgradeBusiness, Multiplier: 1.5, UnlockRequirement: 1000},
			{ID: "cloud-ide", Name: "Cloud IDE", Description: "Increases team productivity by 75%", Cost: 5000, Type: UpgradeTeam, Multiplier: 1.75, UnlockRequirement: 2500},
			{ID: "offline-booster", Name: "Offline Income Booster", Description: "Increases offline income by 25%", Cost: 7500, Type: UpgradeOffline, Multiplier: 1.25, UnlockRequirement: 3000},
			{ID: "cicd-automation", Name: "CI/CD Automation", Description: "Doubles all production rates", Cost: 10000, Type: UpgradeAll, Multiplier: 2, UnlockRequirement: 5000},
			{ID: "ergonomic-chair", Name: "Ergonomic Chair", Description: "Triple your clicking efficiency", Cost: 25000, Type: UpgradeClick, Multiplier: 3, UnlockRequirement: 15000},
			{ID: "react-expertise", Name: "React Expertise", Description: "Doubles Frontend Dev productivity", Cost: 50000, Type: UpgradeTeam, Multiplier: 2, TargetID: "frontend-dev", UnlockRequirement: 20000},
			{ID: "redis-caching", Name: "Redis Caching Layer", Description: "Triples SaaS Tool production", Cost: 75000, Type: UpgradeBusiness, Multiplier: 3, TargetID: "saas-tool", UnlockRequirement: 30000},
			{ID: "multiple-monitors", Name: "Multiple Monitors", Description: "Quadruples your clicking efficiency", Cost: 150000, Type: UpgradeClick, Multiplier: 4, UnlockRequirement: 75000},
			{ID: "offshore-team", Name: "Offshore Team", Description: "Doubles offline income", Cost: 200000, Type: UpgradeOffline, Multiplier: 2, UnlockRequirement: 100000},
		},
		Achievements: []Achievement{
			{ID: "first-line", Name: "First Line", Description: "Write your first line of code", Requirement: 1, Type: AchievementLoC, Reward: 10},
			{ID: "code-novice", Name: "Code Novice", Description: "Accumulate 1,000 lines of code", Requirement: 1000, Type: AchievementLoC, Reward: 100},
			{ID: "code-master", Name: "Code Master", Description: "Accumulate 10,000 lines of code", Requirement: 10000, Type: AchievementLoC, Reward: 1000},
			{ID: "business-mogul", Name: "Business Mogul", Description: "Own 10 businesses", Requirement: 10, Type: AchievementBusiness, Reward: 500},
			{ID: "team-leader", Name: "Team Leader", Description: "Hire 10 team members", Requirement: 10, Type: AchievementTeam, Reward: 500},
			{ID: "offline-earner", Name: "Offline Earner", Description: "Earn 5,000 lines of code while offline", Requirement: 5000, Type: AchievementOffline, Reward: 1000},
			{ID: "code-legend", Name: "Code Legend", Description: "Accumulate 100,000 lines of code", Requirement: 100000, Type: AchievementLoC, Reward: 10000},
			{ID: "code-god", Name: "Code God", Description: "Accumulate 1,000,000 lines of code", Requirement: 1000000, Type: AchievementLoC, Reward: 100000},
			{ID: "corporate-empire", Name: "Corporate Empire", Description: "Own 50 businesses", Requirement: 50, Type: AchievementBusiness, Reward: 5000},
			{ID: "team-empire", Name: "Team Empire", Description: "Hire 50 team members", Requirement: 50, Type: AchievementTeam, Reward: 5000},
			{ID: "upgrade-master", Name: "Upgrade Master", Description: "Purchase 10 upgrades", Requirement: 10, Type: AchievementUpgrade, Reward: 2000},
			{ID: "passive-income", Name: "Passive Income", Description: "Reach 1,000 LoC per second", Requirement: 1000, Type: AchievementProduction, Reward: 5000},
		},
	}
}
