package model

import "time"

// DashboardStats contient les statistiques globales du dashboard admin
type DashboardStats struct {
	TotalAmbassadors      int     `json:"totalAmbassadors"`
	ActiveAmbassadors     int     `json:"activeAmbassadors"`
	TotalTeams            int     `json:"totalTeams"`
	CompliantAmbassadors  int     `json:"compliantAmbassadors"`
	OverallComplianceRate float64 `json:"overallComplianceRate"`
	ThisWeekActivity      int     `json:"thisWeekActivity"`
	LastWeekActivity      int     `json:"lastWeekActivity"`
	ActivityTrend         string  `json:"activityTrend"` // up, down, neutral
	ActiveWarnings        int     `json:"activeWarnings"`
	GeneratedAt           time.Time `json:"generatedAt"`
}

// TeamPerformance est le rollup de conformité d'une équipe
type TeamPerformance struct {
	TeamID               string  `json:"teamId"`
	TeamName             string  `json:"teamName"`
	MemberCount          int     `json:"memberCount"`
	ComplianceRate       float64 `json:"complianceRate"`
	TotalActivity        int     `json:"totalActivity"`
	AvgActivityPerMember float64 `json:"avgActivityPerMember"`
	Stories              int     `json:"stories"`
	Posts                int     `json:"posts"`
	Reels                int     `json:"reels"`
}

// UserEngagement est la ligne d'engagement individuelle du panneau analytics
type UserEngagement struct {
	UserID          string     `json:"userId"`
	UserName        string     `json:"userName"`
	TeamName        string     `json:"teamName,omitempty"`
	TotalActivity   int        `json:"totalActivity"`
	Stories         int        `json:"stories"`
	Posts           int        `json:"posts"`
	Reels           int        `json:"reels"`
	ComplianceScore int        `json:"complianceScore"` // catégories "met" sur 3
	LastActivity    *time.Time `json:"lastActivity,omitempty"`
	WarningCount    int        `json:"warningCount"`
	IsActive        bool       `json:"isActive"`
}

// TopPerformer est une entrée du classement des meilleurs ambassadeurs
type TopPerformer struct {
	UserID          string `json:"userId"`
	UserName        string `json:"userName"`
	TeamName        string `json:"teamName,omitempty"`
	TotalActivity   int    `json:"totalActivity"`
	ComplianceScore int    `json:"complianceScore"`
}

// InactiveUser repère un ambassadeur sans publication récente
type InactiveUser struct {
	UserID                string     `json:"userId"`
	UserName              string     `json:"userName"`
	TeamName              string     `json:"teamName,omitempty"`
	LastActivity          *time.Time `json:"lastActivity,omitempty"`
	DaysSinceLastActivity int        `json:"daysSinceLastActivity"`
	WarningCount          int        `json:"warningCount"`
}

// MonthlyActivity est un point mensuel agrégé pour les courbes d'activité
type MonthlyActivity struct {
	Month   string `json:"month"` // YYYY-MM
	Stories int    `json:"stories"`
	Posts   int    `json:"posts"`
	Reels   int    `json:"reels"`
}

// TeamActivity est le total d'activité d'une équipe sur la période courante
type TeamActivity struct {
	TeamName string `json:"teamName"`
	Stories  int    `json:"stories"`
	Posts    int    `json:"posts"`
	Reels    int    `json:"reels"`
}

// TeamContribution est la part d'une équipe dans l'activité totale
type TeamContribution struct {
	Team       string  `json:"team"`
	Percentage float64 `json:"percentage"`
}

// ComplianceWeekStat est un point hebdomadaire de conformité d'équipe
type ComplianceWeekStat struct {
	Week           string `json:"week"` // YYYY-MM-DD, début de fenêtre
	CompliantCount int    `json:"compliantCount"`
	MemberCount    int    `json:"memberCount"`
}

// ActivityTrend est un point de série temporelle pour les graphiques
type ActivityTrend struct {
	Date    string `json:"date"`
	Stories int    `json:"stories"`
	Posts   int    `json:"posts"`
	Reels   int    `json:"reels"`
	Total   int    `json:"total"`
}
