package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presensi_backend/internals/configs"
	"presensi_backend/internals/features/attendance/logs/dto"
	"presensi_backend/internals/features/attendance/logs/model"
	helper "presensi_backend/internals/helpers"
)

var testLoc = time.FixedZone("+05:30", 5*3600+30*60)

// fakeStore meniru unique key (staff_id, timestamp) di storage.
type fakeStore struct {
	rows       map[string]bool
	calls      [][]model.AttendanceLogModel
	failOnCall int // 1-based; 0 = tidak pernah gagal
	strictCall int
}

func newFakeStore() *fakeStore { return &fakeStore{rows: map[string]bool{}} }

func rowKey(r model.AttendanceLogModel) string {
	return fmt.Sprintf("%d|%s", r.AttendanceLogStaffID, r.AttendanceLogTimestamp.String())
}

func (f *fakeStore) InsertIgnoringDuplicates(_ context.Context, rows []model.AttendanceLogModel) (int64, error) {
	f.calls = append(f.calls, rows)
	if f.failOnCall == len(f.calls) {
		return 0, errors.New("connection refused")
	}
	var n int64
	for _, r := range rows {
		if !f.rows[rowKey(r)] {
			f.rows[rowKey(r)] = true
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) InsertAll(_ context.Context, rows []model.AttendanceLogModel, _ int) (int64, error) {
	f.strictCall++
	for _, r := range rows {
		if f.rows[rowKey(r)] {
			return 0, fmt.Errorf("%w: staff %d", ErrDuplicateEvent, r.AttendanceLogStaffID)
		}
	}
	for _, r := range rows {
		f.rows[rowKey(r)] = true
	}
	return int64(len(rows)), nil
}

type fakeRoster map[int64]bool

func (f fakeRoster) KnownIDs(_ context.Context, ids []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, id := range ids {
		if f[id] {
			out[id] = true
		}
	}
	return out, nil
}

func rec(id, ts string) dto.ImportRecord {
	return dto.ImportRecord{StaffID: helper.FlexText(id), Timestamp: helper.FlexText(ts)}
}

func newTestImporter(store *fakeStore, roster RosterLookup, policy string) *AttendanceImporter {
	return NewImporter(store, roster, Options{
		Location:     testLoc,
		ChunkSize:    1000,
		OrphanPolicy: policy,
		Now:          func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, testLoc) },
	})
}

/* ============================ LENIENT ============================ */

func TestImportLenient_IsIdempotent(t *testing.T) {
	store := newFakeStore()
	im := newTestImporter(store, nil, configs.OrphanAllow)
	batch := []dto.ImportRecord{
		rec("7", "2024-01-15 09:00:00"),
		rec("7", "2024-01-15 18:30:00"),
		rec("8", "2024-01-15 09:05:00"),
	}

	first, err := im.ImportLenient(context.Background(), batch)
	require.NoError(t, err)
	assert.EqualValues(t, 3, first.NewRecordsInserted)
	assert.EqualValues(t, 0, first.SkippedAsExistingInDb)

	second, err := im.ImportLenient(context.Background(), batch)
	require.NoError(t, err)
	assert.EqualValues(t, 0, second.NewRecordsInserted)
	assert.EqualValues(t, 3, second.SkippedAsExistingInDb)
	assert.Len(t, store.rows, 3)
}

func TestImportLenient_CollapsesClientDuplicates(t *testing.T) {
	store := newFakeStore()
	im := newTestImporter(store, nil, configs.OrphanAllow)

	res, err := im.ImportLenient(context.Background(), []dto.ImportRecord{
		rec("7", "2024-01-15 09:00:00"),
		rec("7.0", "2024-01-15T09:00:00"),
		rec("7", "2024-01-15 18:30:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalRecords)
	assert.Equal(t, 2, res.UniqueAfterClientDedupe)
	assert.Equal(t, 1, res.SkippedAsClientDuplicates)
	assert.EqualValues(t, 2, res.NewRecordsInserted)
	require.Len(t, store.calls, 1)
	assert.Len(t, store.calls[0], 2)
}

func TestImportLenient_DropsInvalidAndCountsAddUp(t *testing.T) {
	store := newFakeStore()
	im := newTestImporter(store, nil, configs.OrphanAllow)

	res, err := im.ImportLenient(context.Background(), []dto.ImportRecord{
		rec("abc", "2024-01-15 09:00:00"),
		rec("7", ""),
		rec("7.5", "2024-01-15 09:00:00"),
		rec("", "2024-01-15 09:00:00"),
		{UserID: "9", Timestamp: "2024-01-15 09:00:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.DroppedAsInvalid)
	assert.Equal(t, 1, res.UniqueAfterClientDedupe)
	assert.Equal(t, res.TotalRecords,
		res.DroppedAsInvalid+res.DroppedAsUnknownStaff+res.SkippedAsClientDuplicates+res.UniqueAfterClientDedupe)
	assert.True(t, store.rows["9|2024-01-15 09:00:00"])
}

func TestImportLenient_EmptyInput(t *testing.T) {
	im := newTestImporter(newFakeStore(), nil, configs.OrphanAllow)

	_, err := im.ImportLenient(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.EqualError(t, err, "no records provided")

	_, err = im.ImportLenient(context.Background(), []dto.ImportRecord{rec("x", "y")})
	assert.ErrorIs(t, err, ErrEmptyAfterValidation)
	assert.EqualError(t, err, "no valid records to import")
}

func TestImportLenient_ChunkBoundary(t *testing.T) {
	store := newFakeStore()
	im := newTestImporter(store, nil, configs.OrphanAllow)

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, testLoc)
	batch := make([]dto.ImportRecord, 0, 1001)
	for i := 0; i < 1001; i++ {
		batch = append(batch, rec("5", base.Add(time.Duration(i)*time.Second).Format("2006-01-02 15:04:05")))
	}

	res, err := im.ImportLenient(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, store.calls, 2)
	assert.Len(t, store.calls[0], 1000)
	assert.Len(t, store.calls[1], 1)
	assert.Equal(t, 2, res.ChunksWritten)
	assert.EqualValues(t, 1001, res.NewRecordsInserted)
}

func TestImportLenient_FailedChunkKeepsEarlierChunks(t *testing.T) {
	store := newFakeStore()
	store.failOnCall = 2
	store.rows["1|2024-01-01 08:00:00"] = true // sudah ada sebelum import
	im := NewImporter(store, nil, Options{Location: testLoc, ChunkSize: 2})

	res, err := im.ImportLenient(context.Background(), []dto.ImportRecord{
		rec("1", "2024-01-01 08:00:00"),
		rec("2", "2024-01-01 08:00:00"),
		rec("3", "2024-01-01 08:00:00"),
		rec("4", "2024-01-01 08:00:00"),
		rec("5", "2024-01-01 08:00:00"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Contains(t, err.Error(), "connection refused")

	assert.Equal(t, 1, res.ChunksWritten)
	assert.Equal(t, 5, res.UniqueAfterClientDedupe)
	assert.EqualValues(t, 1, res.NewRecordsInserted)
	assert.EqualValues(t, 1, res.SkippedAsExistingInDb, "only the committed chunk is reconciled")
	assert.Len(t, store.calls, 2, "third chunk must not be attempted")
	assert.Len(t, store.rows, 2)
}

func TestImportLenient_EnforcePolicyDropsUnknownStaff(t *testing.T) {
	store := newFakeStore()
	im := newTestImporter(store, fakeRoster{7: true}, configs.OrphanEnforce)

	res, err := im.ImportLenient(context.Background(), []dto.ImportRecord{
		rec("7", "2024-01-15 09:00:00"),
		rec("8", "2024-01-15 09:00:00"),
		rec("8", "2024-01-15 10:00:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.DroppedAsUnknownStaff)
	assert.Equal(t, 1, res.UniqueAfterClientDedupe)
	assert.EqualValues(t, 1, res.NewRecordsInserted)
}

func TestImportLenient_AllowPolicyKeepsUnknownStaff(t *testing.T) {
	store := newFakeStore()
	im := newTestImporter(store, fakeRoster{7: true}, configs.OrphanAllow)

	res, err := im.ImportLenient(context.Background(), []dto.ImportRecord{rec("8", "2024-01-15 09:00:00")})
	require.NoError(t, err)
	assert.Equal(t, 0, res.DroppedAsUnknownStaff)
	assert.EqualValues(t, 1, res.NewRecordsInserted)
}

func TestProperty_LenientCountsReconcile(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	genRecord := gopter.CombineGens(gen.IntRange(-1, 4), gen.IntRange(0, 5)).Map(func(v []interface{}) dto.ImportRecord {
		id, minute := v[0].(int), v[1].(int)
		staff := fmt.Sprint(id)
		if id < 0 {
			staff = "n/a"
		}
		return rec(staff, fmt.Sprintf("2024-05-01 08:%02d:00", minute))
	})

	properties.Property("total = invalid + clientDup + unique, and store holds each pair once", prop.ForAll(
		func(batch []dto.ImportRecord) bool {
			store := newFakeStore()
			im := newTestImporter(store, nil, configs.OrphanAllow)
			res, err := im.ImportLenient(context.Background(), batch)
			if len(batch) == 0 {
				return errors.Is(err, ErrInvalidInput)
			}
			if res.UniqueAfterClientDedupe == 0 {
				return errors.Is(err, ErrEmptyAfterValidation)
			}
			return err == nil &&
				res.TotalRecords == res.DroppedAsInvalid+res.SkippedAsClientDuplicates+res.UniqueAfterClientDedupe &&
				int(res.NewRecordsInserted) == res.UniqueAfterClientDedupe &&
				len(store.rows) == res.UniqueAfterClientDedupe
		},
		gen.SliceOf(genRecord),
	))

	properties.TestingRun(t)
}

/* ============================ STRICT ============================ */

func TestImportStrictCSV_Success(t *testing.T) {
	store := newFakeStore()
	im := newTestImporter(store, nil, configs.OrphanAllow)

	csv := "staffId,timestamp,verifyMode\n" +
		"7,2024-01-15 09:00:00,1\n" +
		"7,2024-01-15 18:30:00,1\n"
	res, err := im.ImportStrictCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.RecordsImported)
	assert.Equal(t, 1, store.strictCall)
}

func TestImportStrictCSV_OneBadRowRejectsWholeBatch(t *testing.T) {
	store := newFakeStore()
	im := newTestImporter(store, nil, configs.OrphanAllow)

	csv := "staffId,timestamp\n" +
		"1,2024-01-15 09:00:00\n" +
		"2,2024-01-15 09:00:00\n" +
		"abc,2024-01-15 09:00:00\n" +
		"4,2024-01-15 09:00:00\n" +
		"5,2024-01-15 09:00:00\n"
	_, err := im.ImportStrictCSV(context.Background(), strings.NewReader(csv))

	var verr *CSVValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, 3, verr.Errors[0].Row)
	assert.Equal(t, "staffId", verr.Errors[0].Field)
	assert.Equal(t, 4, verr.ValidRows)
	assert.Equal(t, 0, store.strictCall)
	assert.Empty(t, store.rows)
}

func TestImportStrictCSV_RowRules(t *testing.T) {
	im := newTestImporter(newFakeStore(), nil, configs.OrphanAllow)

	csv := "User ID,Timestamp\n" +
		"1,2024-01-15 09:00:00\n" + // ok
		"1,2024-01-15 09:00:00\n" + // duplikat baris 1
		"2,2030-01-01 00:00:00\n" + // masa depan
		"3,15/01/2024 09:00\n" + // format salah
		"0,2024-01-15 09:00:00\n" // id tidak positif
	_, err := im.ImportStrictCSV(context.Background(), strings.NewReader(csv))

	var verr *CSVValidationError
	require.ErrorAs(t, err, &verr)
	rows := make([]int, 0, len(verr.Errors))
	for _, e := range verr.Errors {
		rows = append(rows, e.Row)
	}
	assert.Equal(t, []int{2, 3, 4, 5}, rows)
	assert.Equal(t, 1, verr.ValidRows)
	assert.Contains(t, verr.Errors[0].Message, "duplicate of row 1")
}

func TestImportStrictCSV_RejectsFractionalSeconds(t *testing.T) {
	store := newFakeStore()
	im := newTestImporter(store, nil, configs.OrphanAllow)

	csv := "staffId,timestamp\n" +
		"7,2024-01-15 09:00:00.250\n" +
		"7,2024-01-15 09:00:00.750\n"
	_, err := im.ImportStrictCSV(context.Background(), strings.NewReader(csv))

	var verr *CSVValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 2)
	assert.Zero(t, verr.ValidRows)
	for i, e := range verr.Errors {
		assert.Equal(t, i+1, e.Row)
		assert.Equal(t, "timestamp must be YYYY-MM-DD HH:MM:SS", e.Message)
	}
	assert.Zero(t, store.strictCall)
}

func TestImportStrictCSV_IsNotIdempotent(t *testing.T) {
	store := newFakeStore()
	im := newTestImporter(store, nil, configs.OrphanAllow)
	csv := "staffId,timestamp\n7,2024-01-15 09:00:00\n"

	_, err := im.ImportStrictCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	_, err = im.ImportStrictCSV(context.Background(), strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrDuplicateEvent)
	assert.Len(t, store.rows, 1)
}

func TestImportStrictCSV_HeaderAndEmptyBody(t *testing.T) {
	im := newTestImporter(newFakeStore(), nil, configs.OrphanAllow)

	_, err := im.ImportStrictCSV(context.Background(), strings.NewReader("name,when\nx,y\n"))
	assert.ErrorIs(t, err, ErrMissingColumns)

	_, err = im.ImportStrictCSV(context.Background(), strings.NewReader("staffId,timestamp\n"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestImportStrictCSV_EnforcePolicyRejectsUnknownStaff(t *testing.T) {
	store := newFakeStore()
	im := newTestImporter(store, fakeRoster{7: true}, configs.OrphanEnforce)

	csv := "staffId,timestamp\n7,2024-01-15 09:00:00\n99,2024-01-15 09:00:00\n"
	_, err := im.ImportStrictCSV(context.Background(), strings.NewReader(csv))

	var verr *CSVValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, 2, verr.Errors[0].Row)
	assert.Empty(t, store.rows)
}
