package render

// DatePart names the component of a date or time column a condition
// compares.
type DatePart string

const (
	PartDate  DatePart = "DATE"
	PartTime  DatePart = "TIME"
	PartYear  DatePart = "YEAR"
	PartMonth DatePart = "MONTH"
	PartDay   DatePart = "DAY"
)

// DateStyle selects how date parts are extracted from a column.
type DateStyle int

const (
	DateNone      DateStyle = iota // no date part extraction
	DateFunctions                  // DATE(c), TIME(c), YEAR(c), MONTH(c), DAY(c)
	DateExtract                    // CAST(c AS DATE), CAST(c AS TIME), EXTRACT(YEAR FROM c)
	DateStrftime                   // date(c), time(c), CAST(strftime('%Y', c) AS INTEGER)
	DateCast                       // CAST(c AS DATE), CAST(c AS TIME), YEAR(c), MONTH(c), DAY(c)
)

var strftimeFormats = map[DatePart]string{
	PartYear:  "%Y",
	PartMonth: "%m",
	PartDay:   "%d",
}

// DatePart wraps an already quoted column so it yields part. Year, month and
// day render as integers; date and time as YYYY-MM-DD and HH:MM:SS.
func (b *Base) DatePart(part DatePart, column string) (string, error) {
	switch part {
	case PartDate, PartTime, PartYear, PartMonth, PartDay:
	default:
		return "", NewUnsupportedFeatureError(b.name, "date part "+string(part))
	}

	isCalendar := part == PartDate || part == PartTime
	switch b.caps.Dates {
	case DateFunctions:
		return string(part) + "(" + column + ")", nil
	case DateExtract:
		if isCalendar {
			return "CAST(" + column + " AS " + string(part) + ")", nil
		}
		return "EXTRACT(" + string(part) + " FROM " + column + ")", nil
	case DateStrftime:
		if part == PartDate {
			return "date(" + column + ")", nil
		}
		if part == PartTime {
			return "time(" + column + ")", nil
		}
		return "CAST(strftime('" + strftimeFormats[part] + "', " + column + ") AS INTEGER)", nil
	case DateCast:
		if isCalendar {
			return "CAST(" + column + " AS " + string(part) + ")", nil
		}
		return string(part) + "(" + column + ")", nil
	default:
		return "", NewUnsupportedFeatureError(b.name, string(part)+" extraction")
	}
}
