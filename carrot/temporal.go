package carrot

import (
	"fmt"
	"time"
)

// dateCodec encodes a calendar date as three varints: year, month (1-12)
// and day (1-31). It carries no time zone or time-of-day information.
type dateCodec struct{ inner Codec }

// Date returns the codec for calendar dates, backed by time.Time but only
// ever reading/writing its Y/M/D fields.
func Date() Codec { return dateCodec{inner: Struct(Int(), Int(), Int())} }

func (c dateCodec) Encode(v any) ([]byte, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, &UsageError{Msg: fmt.Sprintf("Date: cannot encode %T", v)}
	}
	y, m, d := t.Date()
	return c.inner.Encode([]any{int64(y), int64(m), int64(d)})
}

func (c dateCodec) Decode(b []byte, pos int) (int, any, error) {
	pos, v, err := c.inner.Decode(b, pos)
	if err != nil {
		return 0, nil, err
	}
	fields := v.([]any)
	y, m, d := fields[0].(int64), fields[1].(int64), fields[2].(int64)
	return pos, time.Date(int(y), time.Month(m), int(d), 0, 0, 0, 0, time.UTC), nil
}

// timeCodec encodes a time-of-day as four varints: hour, minute, second and
// microsecond, with no associated calendar date.
type timeCodec struct{ inner Codec }

// Time returns the codec for times of day.
func Time() Codec { return timeCodec{inner: Struct(Int(), Int(), Int(), Int())} }

func (c timeCodec) Encode(v any) ([]byte, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, &UsageError{Msg: fmt.Sprintf("Time: cannot encode %T", v)}
	}
	us := int64(t.Nanosecond()) / 1000
	return c.inner.Encode([]any{int64(t.Hour()), int64(t.Minute()), int64(t.Second()), us})
}

func (c timeCodec) Decode(b []byte, pos int) (int, any, error) {
	pos, v, err := c.inner.Decode(b, pos)
	if err != nil {
		return 0, nil, err
	}
	fields := v.([]any)
	h, m, s, us := fields[0].(int64), fields[1].(int64), fields[2].(int64), fields[3].(int64)
	return pos, time.Date(0, time.January, 1, int(h), int(m), int(s), int(us)*1000, time.UTC), nil
}

// dateTimeCodec concatenates Date and Time's encodings: year, month, day,
// hour, minute, second, microsecond.
type dateTimeCodec struct{ inner Codec }

// DateTime returns the codec for a combined calendar date and time of day.
func DateTime() Codec {
	return dateTimeCodec{inner: Struct(Int(), Int(), Int(), Int(), Int(), Int(), Int())}
}

func (c dateTimeCodec) Encode(v any) ([]byte, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, &UsageError{Msg: fmt.Sprintf("DateTime: cannot encode %T", v)}
	}
	y, mo, d := t.Date()
	us := int64(t.Nanosecond()) / 1000
	return c.inner.Encode([]any{
		int64(y), int64(mo), int64(d),
		int64(t.Hour()), int64(t.Minute()), int64(t.Second()), us,
	})
}

func (c dateTimeCodec) Decode(b []byte, pos int) (int, any, error) {
	pos, v, err := c.inner.Decode(b, pos)
	if err != nil {
		return 0, nil, err
	}
	f := v.([]any)
	y, mo, d := f[0].(int64), f[1].(int64), f[2].(int64)
	h, mi, s, us := f[3].(int64), f[4].(int64), f[5].(int64), f[6].(int64)
	return pos, time.Date(int(y), time.Month(mo), int(d), int(h), int(mi), int(s), int(us)*1000, time.UTC), nil
}
