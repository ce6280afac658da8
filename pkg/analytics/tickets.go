/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package analytics

import (
	"time"

	"github.com/carverauto/campusnoc/pkg/models"
)

const ticketCreatedLayout = "2006-01-02 15:04:05"

// BuildTicketView keeps the delivered order and drops malformed tickets. A
// nil list means the ticketing system could not be reached.
func BuildTicketView(tickets []models.Ticket) (models.TicketView, int) {
	if tickets == nil {
		return models.TicketView{Rows: []models.TicketRow{}, Message: "Failed to load tickets"}, 0
	}

	kept, dropped := keepWellFormed(tickets, func(t *models.Ticket) bool { return t.Malformed })

	rows := make([]models.TicketRow, 0, len(kept))
	for i := range kept {
		rows = append(rows, models.TicketRow{
			Number:      kept[i].Number,
			Description: kept[i].ShortDescription,
			Priority:    kept[i].Priority,
			Category:    kept[i].Category,
			State:       kept[i].State,
			Created:     formatTicketCreated(kept[i].CreatedOn),
		})
	}

	return models.TicketView{Available: true, Count: len(rows), Rows: rows}, dropped
}

func formatTicketCreated(ts models.Timestamp) string {
	if !ts.Valid() {
		return ""
	}

	return ts.In(time.UTC).Format(ticketCreatedLayout)
}
