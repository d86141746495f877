package report

import (
	"sort"
	"time"

	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/shopspring/decimal"
)

// DefaultRankingSize is used by [RankingTop] when n <= 0.
const DefaultRankingSize = 5

// Balance sums the prices of userID's transactions. A user without
// transactions owes zero.
func Balance(transactions []models.Transaction, userID int64) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range transactions {
		if t.UserID == userID {
			balance = balance.Add(t.Price)
		}
	}
	return balance
}

// Balances returns the outstanding debt of every user, in the order of users.
func Balances(users []models.User, transactions []models.Transaction) []models.Balance {
	totals := make(map[int64]decimal.Decimal, len(users))
	items := make(map[int64]int, len(users))
	for _, t := range transactions {
		totals[t.UserID] = totals[t.UserID].Add(t.Price)
		items[t.UserID]++
	}

	balances := make([]models.Balance, 0, len(users))
	for _, u := range users {
		balances = append(balances, models.Balance{
			UserID:   u.ID,
			UserName: u.Name,
			Balance:  totals[u.ID],
			Items:    items[u.ID],
		})
	}
	return balances
}

// DebtOf returns userID's transactions, newest first.
func DebtOf(transactions []models.Transaction, userID int64) []models.Transaction {
	debt := make([]models.Transaction, 0)
	for _, t := range transactions {
		if t.UserID == userID {
			debt = append(debt, t)
		}
	}
	SortTransactions(debt)
	return debt
}

// HistoryOf returns userID's history entries, newest first.
func HistoryOf(history []models.PurchaseHistory, userID int64) []models.PurchaseHistory {
	entries := make([]models.PurchaseHistory, 0)
	for _, h := range history {
		if h.UserID == userID {
			entries = append(entries, h)
		}
	}
	SortHistory(entries)
	return entries
}

// SortTransactions orders transactions by timestamp descending, newest
// first. Equal timestamps fall back to the higher id.
func SortTransactions(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return newerFirst(transactions[i].Timestamp, transactions[j].Timestamp, transactions[i].ID, transactions[j].ID)
	})
}

// SortHistory orders history entries by timestamp descending.
func SortHistory(history []models.PurchaseHistory) {
	sort.SliceStable(history, func(i, j int) bool {
		return newerFirst(history[i].Timestamp, history[j].Timestamp, history[i].ID, history[j].ID)
	})
}

func newerFirst(a, b time.Time, idA, idB int64) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA > idB
}

// RankingTop ranks users by number of purchases in the current cycle.
// Ties keep the order of users. n <= 0 means [DefaultRankingSize].
func RankingTop(users []models.User, transactions []models.Transaction, n int) []models.RankingEntry {
	if n <= 0 {
		n = DefaultRankingSize
	}

	counts := make(map[int64]int, len(users))
	spent := make(map[int64]decimal.Decimal, len(users))
	for _, t := range transactions {
		counts[t.UserID]++
		spent[t.UserID] = spent[t.UserID].Add(t.Price)
	}

	ranking := make([]models.RankingEntry, 0, len(users))
	for _, u := range users {
		ranking = append(ranking, models.RankingEntry{
			UserID: u.ID,
			Name:   u.Name,
			Count:  counts[u.ID],
			Spent:  spent[u.ID],
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})

	if len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// CategoryMix counts transactions per category frozen at purchase time.
// Every known category is present, zero counts included.
func CategoryMix(transactions []models.Transaction) []models.CategoryCount {
	counts := make(map[models.ProductType]int, len(models.ProductTypes))
	for _, t := range transactions {
		counts[t.ProductType.Normalize()]++
	}

	mix := make([]models.CategoryCount, 0, len(models.ProductTypes))
	for _, productType := range models.ProductTypes {
		mix = append(mix, models.CategoryCount{Type: productType, Count: counts[productType]})
	}
	return mix
}

// Hourly buckets transactions by hour of day in loc. A nil loc means UTC.
func Hourly(transactions []models.Transaction, loc *time.Location) models.HourlyHistogram {
	if loc == nil {
		loc = time.UTC
	}

	var histogram models.HourlyHistogram
	for _, t := range transactions {
		histogram[t.Timestamp.In(loc).Hour()]++
	}
	return histogram
}

// Summary totals the outstanding amount and item count of the current cycle.
func Summary(transactions []models.Transaction) models.Summary {
	summary := models.Summary{TotalRevenue: decimal.Zero}
	for _, t := range transactions {
		summary.TotalRevenue = summary.TotalRevenue.Add(t.Price)
		summary.TotalItems++
	}
	return summary
}

// MonthTotals sums history entries per user, in order of first appearance.
func MonthTotals(history []models.PurchaseHistory) []models.Balance {
	index := make(map[int64]int)
	totals := make([]models.Balance, 0)
	for _, h := range history {
		i, ok := index[h.UserID]
		if !ok {
			i = len(totals)
			index[h.UserID] = i
			totals = append(totals, models.Balance{UserID: h.UserID, UserName: h.UserName, Balance: decimal.Zero})
		}
		totals[i].Balance = totals[i].Balance.Add(h.Price)
		totals[i].Items++
	}
	return totals
}
