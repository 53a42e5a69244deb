package models

// FileDownloadCount is a per-file download tally for one owner.
type FileDownloadCount struct {
	FileName      string
	DownloadCount int
}

// DailyDownloadCount is the number of downloads across an owner's files on
// one UTC calendar date (YYYY-MM-DD).
type DailyDownloadCount struct {
	Date  string
	Count int
}

// AnalyticsSummary aggregates download history across all files owned by
// one user.
type AnalyticsSummary struct {
	TotalDownloads int
	MostAccessed   []FileDownloadCount
	AccessPattern  []DailyDownloadCount
}
