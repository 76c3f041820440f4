package condql

import (
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/zoobzio/condql/internal/render"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// formatDate normalizes a value to YYYY-MM-DD.
func formatDate(v any) (any, error) {
	t, err := cast.ToTimeE(v)
	if err != nil {
		return nil, err
	}
	return t.Format(dateLayout), nil
}

// formatTime normalizes a value to HH:MM:SS.
func formatTime(v any) (any, error) {
	if s, ok := v.(string); ok {
		if t, err := time.Parse(timeLayout, s); err == nil {
			return t.Format(timeLayout), nil
		}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return nil, err
	}
	return t.Format(timeLayout), nil
}

// datePart returns a formatter extracting part from times and casting
// anything else to int.
func datePart(part func(time.Time) int) formatter {
	return func(v any) (any, error) {
		switch x := v.(type) {
		case time.Time:
			return part(x), nil
		case string:
			// Leading zeros would make cast parse "08" as octal.
			trimmed := strings.TrimLeft(strings.TrimSpace(x), "0")
			if trimmed == "" {
				trimmed = "0"
			}
			return cast.ToIntE(trimmed)
		}
		return cast.ToIntE(v)
	}
}

var (
	formatYear  = datePart(func(t time.Time) int { return t.Year() })
	formatMonth = datePart(func(t time.Time) int { return int(t.Month()) })
	formatDay   = datePart(func(t time.Time) int { return t.Day() })
)

// Date compares the date part of col to a date. Values are formatted as
// YYYY-MM-DD. Each dialect extracts the part its own way (DATE(col),
// CAST(col AS DATE), date(col)).
func (c *Conditions) Date(col, value any) *Conditions {
	return c.compare(AND, col, Infer, value, render.PartDate, formatDate)
}

// DateOp compares the date part of col with an explicit operator.
func (c *Conditions) DateOp(col any, op Operator, value any) *Conditions {
	return c.compare(AND, col, op, value, render.PartDate, formatDate)
}

// OrDate is Date joined with OR.
func (c *Conditions) OrDate(col, value any) *Conditions {
	return c.compare(OR, col, Infer, value, render.PartDate, formatDate)
}

// OrDateOp is DateOp joined with OR.
func (c *Conditions) OrDateOp(col any, op Operator, value any) *Conditions {
	return c.compare(OR, col, op, value, render.PartDate, formatDate)
}

// Time compares the time of day of col. Values are formatted as HH:MM:SS.
func (c *Conditions) Time(col, value any) *Conditions {
	return c.compare(AND, col, Infer, value, render.PartTime, formatTime)
}

// TimeOp compares the time of day of col with an explicit operator.
func (c *Conditions) TimeOp(col any, op Operator, value any) *Conditions {
	return c.compare(AND, col, op, value, render.PartTime, formatTime)
}

// OrTime is Time joined with OR.
func (c *Conditions) OrTime(col, value any) *Conditions {
	return c.compare(OR, col, Infer, value, render.PartTime, formatTime)
}

// OrTimeOp is TimeOp joined with OR.
func (c *Conditions) OrTimeOp(col any, op Operator, value any) *Conditions {
	return c.compare(OR, col, op, value, render.PartTime, formatTime)
}

// Year compares the year of col to an integer year.
func (c *Conditions) Year(col, value any) *Conditions {
	return c.compare(AND, col, Infer, value, render.PartYear, formatYear)
}

// YearOp compares the year of col with an explicit operator.
func (c *Conditions) YearOp(col any, op Operator, value any) *Conditions {
	return c.compare(AND, col, op, value, render.PartYear, formatYear)
}

// OrYear is Year joined with OR.
func (c *Conditions) OrYear(col, value any) *Conditions {
	return c.compare(OR, col, Infer, value, render.PartYear, formatYear)
}

// OrYearOp is YearOp joined with OR.
func (c *Conditions) OrYearOp(col any, op Operator, value any) *Conditions {
	return c.compare(OR, col, op, value, render.PartYear, formatYear)
}

// Month compares the month of col to an integer month.
func (c *Conditions) Month(col, value any) *Conditions {
	return c.compare(AND, col, Infer, value, render.PartMonth, formatMonth)
}

// MonthOp compares the month of col with an explicit operator.
func (c *Conditions) MonthOp(col any, op Operator, value any) *Conditions {
	return c.compare(AND, col, op, value, render.PartMonth, formatMonth)
}

// OrMonth is Month joined with OR.
func (c *Conditions) OrMonth(col, value any) *Conditions {
	return c.compare(OR, col, Infer, value, render.PartMonth, formatMonth)
}

// OrMonthOp is MonthOp joined with OR.
func (c *Conditions) OrMonthOp(col any, op Operator, value any) *Conditions {
	return c.compare(OR, col, op, value, render.PartMonth, formatMonth)
}

// Day compares the day of month of col to an integer.
func (c *Conditions) Day(col, value any) *Conditions {
	return c.compare(AND, col, Infer, value, render.PartDay, formatDay)
}

// DayOp compares the day of month of col with an explicit operator.
func (c *Conditions) DayOp(col any, op Operator, value any) *Conditions {
	return c.compare(AND, col, op, value, render.PartDay, formatDay)
}

// OrDay is Day joined with OR.
func (c *Conditions) OrDay(col, value any) *Conditions {
	return c.compare(OR, col, Infer, value, render.PartDay, formatDay)
}

// OrDayOp is DayOp joined with OR.
func (c *Conditions) OrDayOp(col any, op Operator, value any) *Conditions {
	return c.compare(OR, col, op, value, render.PartDay, formatDay)
}
