package domain

import "github.com/shopspring/decimal"

type YieldPoint struct {
	Season    string
	TonsPerHa decimal.Decimal
	Predicted bool
}

type ExpenseCategory string

const (
	ExpenseFertilizer ExpenseCategory = "fertilizer"
	ExpenseSeeds      ExpenseCategory = "seeds"
	ExpenseLabor      ExpenseCategory = "labor"
	ExpenseEquipment  ExpenseCategory = "equipment"
)

type Expense struct {
	Category ExpenseCategory
	Amount   decimal.Decimal
	Percent  decimal.Decimal // share of the total, filled by the service
}

type SoilLevel string

const (
	SoilLow     SoilLevel = "low"
	SoilMedium  SoilLevel = "medium"
	SoilOptimal SoilLevel = "optimal"
)

type SoilReading struct {
	Nutrient string // nitrogen, phosphorus, potassium
	Level    SoilLevel
}
