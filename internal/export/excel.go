// Package export renders admin data as Excel workbooks. Column
// headers are localized because the workbooks go straight to the
// temple's volunteers.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/wanfu-temple/temple-api/internal/domain"
)

const (
	participantsSheet = "報名資料"
	donationsSheet    = "捐款資料"
)

var participantHeaders = []string{
	"姓名", "活動名稱", "身分證", "地址", "生辰", "生肖",
	"是否參加", "代辦人", "關係人", "創造日期", "最後編輯", "繳費狀態", "已查看",
}

var donationHeaders = []string{
	"身分證", "姓名", "生辰", "地址", "活動名稱", "捐款金額", "捐款時間", "備註",
}

func statusLabel(status domain.ParticipationStatus) string {
	switch status {
	case domain.StatusJoin:
		return "參加"
	case domain.StatusAgent:
		return "代辦"
	default:
		return "不參加"
	}
}

func payStatusLabel(status string) string {
	if status == domain.PayStatusPaid {
		return "已繳交"
	}
	return "未繳交"
}

func viewedLabel(viewed bool) string {
	if viewed {
		return "是"
	}
	return "否"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// ParticipantsWorkbook writes one row per participant, preserving the
// order of the input slice.
func ParticipantsWorkbook(participants []domain.Participant) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), participantsSheet); err != nil {
		return nil, fmt.Errorf("f.SetSheetName -> %w", err)
	}

	if err := writeRow(f, participantsSheet, 1, participantHeaders); err != nil {
		return nil, err
	}

	for i, p := range participants {
		row := []string{
			p.Name,
			p.EventName,
			p.IDCard,
			p.Address,
			p.Birthday,
			p.Zodiac,
			statusLabel(p.Status),
			p.AgentName,
			p.FamilyID,
			formatTime(p.CreatedAt),
			formatTime(p.UpdatedAt),
			payStatusLabel(p.PayStatus),
			viewedLabel(p.AdminViewed),
		}
		if err := writeRow(f, participantsSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// DonationsWorkbook writes one row per donation, preserving the order
// of the input slice. Amounts are whole dollars.
func DonationsWorkbook(donations []domain.Donation) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), donationsSheet); err != nil {
		return nil, fmt.Errorf("f.SetSheetName -> %w", err)
	}

	if err := writeRow(f, donationsSheet, 1, donationHeaders); err != nil {
		return nil, err
	}

	for i, d := range donations {
		row := []string{
			d.IDCard,
			d.Donor,
			d.Birthday,
			d.Address,
			d.CampaignTitle,
			fmt.Sprintf("%d", d.Amount),
			formatTime(d.CreatedAt),
			d.Memo,
		}
		if err := writeRow(f, donationsSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
	}
	if err = f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("f.SetSheetRow -> %w", err)
	}
	return nil
}
