// Package seed builds the Course/Room/TimeSlot/Lecturer sample
// timetabling problem used by `schedulerd serve --seed-sample` and
// `schedulerd solve --seed-sample` when no problem file is given,
// grounded on original_source/src/main.rs's create_sample_problem and
// create_sample_constraints (every member, field, and constraint
// weight carried over unchanged).
package seed

import "github.com/khryptorgraphics/schedcore/internal/model"

// Problem returns the four-category university timetabling sample.
func Problem() model.ProblemData {
	courseSchema := map[string]model.FieldSchema{
		"name":     {FieldName: "name", FieldType: model.FieldText, IsRequired: true},
		"duration": {FieldName: "duration", FieldType: model.FieldInteger, IsRequired: true},
	}
	courses := []model.Member{
		{ID: 1, Fields: map[string]model.Value{"name": model.NewStringValue("Photogrammetric CV"), "duration": model.NewNumberValue(90)}},
		{ID: 2, Fields: map[string]model.Value{"name": model.NewStringValue("Machine Learning"), "duration": model.NewNumberValue(90)}},
		{ID: 3, Fields: map[string]model.Value{"name": model.NewStringValue("Virtual Reality"), "duration": model.NewNumberValue(90)}},
		{ID: 4, Fields: map[string]model.Value{"name": model.NewStringValue("HCI Theory"), "duration": model.NewNumberValue(90)}},
		{ID: 5, Fields: map[string]model.Value{"name": model.NewStringValue("Computer Vision"), "duration": model.NewNumberValue(90)}},
	}

	roomSchema := map[string]model.FieldSchema{
		"name":     {FieldName: "name", FieldType: model.FieldText, IsRequired: true},
		"capacity": {FieldName: "capacity", FieldType: model.FieldInteger, IsRequired: true},
	}
	rooms := []model.Member{
		{ID: 1, Fields: map[string]model.Value{"name": model.NewStringValue("B11"), "capacity": model.NewNumberValue(50)}},
		{ID: 2, Fields: map[string]model.Value{"name": model.NewStringValue("SR_A"), "capacity": model.NewNumberValue(30)}},
		{ID: 3, Fields: map[string]model.Value{"name": model.NewStringValue("SR_H"), "capacity": model.NewNumberValue(25)}},
		{ID: 4, Fields: map[string]model.Value{"name": model.NewStringValue("LH_HK7"), "capacity": model.NewNumberValue(100)}},
	}

	timeSlotSchema := map[string]model.FieldSchema{
		"day":   {FieldName: "day", FieldType: model.FieldText, IsRequired: true},
		"start": {FieldName: "start", FieldType: model.FieldDateTime, IsRequired: true},
		"end":   {FieldName: "end", FieldType: model.FieldDateTime, IsRequired: true},
	}
	timeSlots := []model.Member{
		timeSlot(1, "Monday", "08:00", "09:30"),
		timeSlot(2, "Monday", "09:45", "11:15"),
		// 12:00-13:30 is lunch, deliberately no slot
		timeSlot(3, "Monday", "13:30", "15:00"),
		timeSlot(4, "Tuesday", "09:45", "11:15"),
		timeSlot(5, "Wednesday", "13:30", "15:00"),
		timeSlot(6, "Thursday", "09:45", "11:15"),
		timeSlot(7, "Friday", "15:15", "16:45"),
	}

	lecturerSchema := map[string]model.FieldSchema{
		"name": {FieldName: "name", FieldType: model.FieldText, IsRequired: true},
	}
	lecturers := []model.Member{
		{ID: 1, Fields: map[string]model.Value{"name": model.NewStringValue("Prof. Rodehorst")}},
		{ID: 2, Fields: map[string]model.Value{"name": model.NewStringValue("Prof. Stein")}},
		{ID: 3, Fields: map[string]model.Value{"name": model.NewStringValue("Prof. Fröhlich")}},
		{ID: 4, Fields: map[string]model.Value{"name": model.NewStringValue("Prof. Hornecker")}},
	}

	return model.ProblemData{
		ItemCategories: map[string]model.Item{
			"Course": {
				Name: "Course", ItemSetType: model.BSet,
				Members: courses, Schema: courseSchema,
			},
			"Room": {
				Name: "Room", ItemSetType: model.ESet,
				Members: rooms, Schema: roomSchema,
			},
			"TimeSlot": {
				Name: "TimeSlot", ItemSetType: model.ESet,
				Members: timeSlots, Schema: timeSlotSchema,
			},
			"Lecturer": {
				Name: "Lecturer", ItemSetType: model.ESet,
				Members: lecturers, Schema: lecturerSchema,
			},
		},
	}
}

func timeSlot(id model.ItemId, day, start, end string) model.Member {
	return model.Member{ID: id, Fields: map[string]model.Value{
		"day":   model.NewStringValue(day),
		"start": model.NewDateValue(start),
		"end":   model.NewDateValue(end),
	}}
}

// Constraints returns the nine sample constraints, four hard
// (weight >= 100) and five soft, matching create_sample_constraints
// in weight and rule shape.
func Constraints() []model.Constraint {
	return []model.Constraint{
		{
			Name: "No Room Conflicts", Weight: 100,
			Rule: model.ConstraintRule{
				Kind:            model.RuleGlobalAllDifferent,
				UniqueItemField: model.ParseItemField("Room:id"),
				GroupItemField:  model.ParseItemField("TimeSlot:id"),
			},
		},
		{
			Name: "No Lecturer Conflicts", Weight: 100,
			Rule: model.ConstraintRule{
				Kind:            model.RuleGlobalAllDifferent,
				UniqueItemField: model.ParseItemField("Lecturer:id"),
				GroupItemField:  model.ParseItemField("TimeSlot:id"),
			},
		},
		{
			Name: "Mandatory Lunch Break", Weight: 150,
			Rule: model.ConstraintRule{
				Kind: model.RuleMultiAssignmentCheck,
				Conditions: []model.Condition{
					{ItemName: "TimeSlot", FieldKey: "start", Operator: model.OpIn,
						TargetValues: []string{"12:00", "12:30", "13:00"}},
				},
				LogicalOp: model.LogicalOr,
				Mode:      model.ModeForbid,
			},
		},
		{
			Name: "Room Must Fit Students", Weight: 100,
			Rule: model.ConstraintRule{
				Kind: model.RuleMultiAssignmentCheck,
				Conditions: []model.Condition{
					{ItemName: "Room", FieldKey: "capacity", Operator: model.OpLessThan,
						TargetValues: []string{"40"}},
				},
				LogicalOp: model.LogicalAnd,
				Mode:      model.ModeForbid,
			},
		},
		{
			Name: "Max 2 Courses Per Lecturer", Weight: 80,
			Rule: model.ConstraintRule{
				Kind:            model.RuleGlobalCardinality,
				TargetItemField: model.ParseItemField("Lecturer:id"),
				MaxCount:        2,
			},
		},
		{
			Name: "No Late Evening Classes", Weight: 60,
			Rule: model.ConstraintRule{
				Kind: model.RuleMultiAssignmentCheck,
				Conditions: []model.Condition{
					{ItemName: "TimeSlot", FieldKey: "start", Operator: model.OpGreaterThanOrEqual,
						TargetValues: []string{"18:00"}},
				},
				LogicalOp: model.LogicalAnd,
				Mode:      model.ModeForbid,
			},
		},
		{
			Name: "Avoid Friday Afternoon", Weight: 25,
			Rule: model.ConstraintRule{
				Kind: model.RuleMultiAssignmentCheck,
				Conditions: []model.Condition{
					{ItemName: "TimeSlot", FieldKey: "day", Operator: model.OpEqual,
						TargetValues: []string{"Friday"}},
					{ItemName: "TimeSlot", FieldKey: "start", Operator: model.OpGreaterThanOrEqual,
						TargetValues: []string{"13:00"}},
				},
				LogicalOp: model.LogicalAnd,
				Mode:      model.ModeForbid,
			},
		},
		{
			Name: "Prefer Morning Teaching", Weight: 15,
			Rule: model.ConstraintRule{
				Kind: model.RuleMultiAssignmentCheck,
				Conditions: []model.Condition{
					{ItemName: "TimeSlot", FieldKey: "start", Operator: model.OpGreaterThanOrEqual,
						TargetValues: []string{"15:00"}},
				},
				LogicalOp: model.LogicalAnd,
				Mode:      model.ModeForbid,
			},
		},
		{
			Name: "Professor Research Time", Weight: 40,
			Rule: model.ConstraintRule{
				Kind:            model.RuleGlobalCardinality,
				TargetItemField: model.ParseItemField("Lecturer:id"),
				MaxCount:        3,
				ScopeConditions: []model.Condition{
					{ItemName: "TimeSlot", FieldKey: "start", Operator: model.OpGreaterThanOrEqual,
						TargetValues: []string{"13:30"}},
				},
			},
		},
	}
}
