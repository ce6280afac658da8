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

package models

import "encoding/json"

// Ticket is one incident from the ticketing system, named the way the
// ServiceNow table API names its columns.
type Ticket struct {
	Number           string    `json:"number"`
	ShortDescription string    `json:"short_description"`
	Priority         string    `json:"priority"`
	Category         string    `json:"category"`
	State            string    `json:"state"`
	CreatedOn        Timestamp `json:"sys_created_on"`

	Malformed bool `json:"-"`
}

// UnmarshalJSON flags a wrongly typed ticket instead of failing the list.
func (t *Ticket) UnmarshalJSON(b []byte) error {
	type wire Ticket

	var w wire
	err := json.Unmarshal(b, &w)

	*t = Ticket(w)
	t.Malformed = err != nil

	return nil
}

// TicketRow is one line of the ticket table.
type TicketRow struct {
	Number      string `json:"number" csv:"number"`
	Description string `json:"description" csv:"description"`
	Priority    string `json:"priority" csv:"priority"`
	Category    string `json:"category" csv:"category"`
	State       string `json:"state" csv:"state"`
	Created     string `json:"created" csv:"created"`
}

// TicketView is the ticket count plus the table. When the ticketing system
// could not be reached Available is false and Message says so.
type TicketView struct {
	Available bool        `json:"available"`
	Count     int         `json:"count"`
	Rows      []TicketRow `json:"rows"`
	Message   string      `json:"message,omitempty"`
}
