package timehelper

import "time"

const DateTimeLayout = "2006-01-02 15:04:05"

func GetTodaysDateString() string {
	// Format the current date to 'YYYY-MM-DD'
	return time.Now().Format("2006-01-02")
}

func NowString() string {
	return time.Now().Format(DateTimeLayout)
}
