package ledger

import "kakeibo/internal/core"

// sampleEntries is the fixed demo fixture inserted by Seed.
var sampleEntries = []core.RawReceipt{
	{Date: "2023-01-15", Category: "食費", Description: "スーパーマーケット", Amount: "3500"},
	{Date: "2023-01-20", Category: "交通費", Description: "電車", Amount: "1200"},
	{Date: "2023-01-25", Category: "食費", Description: "レストラン", Amount: "4800"},
	{Date: "2023-02-05", Category: "日用品", Description: "ドラッグストア", Amount: "2600"},
	{Date: "2023-02-10", Category: "交際費", Description: "飲み会", Amount: "5000"},
	{Date: "2023-02-15", Category: "食費", Description: "コンビニ", Amount: "800"},
	{Date: "2023-03-01", Category: "光熱費", Description: "電気代", Amount: "7200"},
	{Date: "2023-03-10", Category: "通信費", Description: "携帯電話", Amount: "8000"},
	{Date: "2023-03-15", Category: "食費", Description: "スーパーマーケット", Amount: "4200"},
}

// Seed inserts the sample fixture and returns the stored receipts.
func (s *Store) Seed() []core.Receipt {
	inserted, _ := s.InsertMany(sampleEntries)
	return inserted
}
