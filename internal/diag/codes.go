package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedContent  Code = 2001
	SynUnclosedBlock      Code = 2002
	SynUnclosedString     Code = 2003
	SynUnclosedComment    Code = 2004
	SynUnclosedFunction   Code = 2005
	SynMissingAtRuleName  Code = 2006
	SynMissingAtRuleValue Code = 2007
	SynExpectedColon      Code = 2008
	SynExpectedValue      Code = 2009
	SynMissingProperty    Code = 2010
	SynUnparsableSelector Code = 2011
	SynUnparsableValue    Code = 2012
	SynTrailingComma      Code = 2013
	SynMissingBlock       Code = 2014
	SynMaxDepth           Code = 2015
	SynExpectedToken      Code = 2016

	// Состояние дерева
	StaInfo             Code = 3000
	StaDetached         Code = 3001
	StaSelfReference    Code = 3002
	StaStatusRegression Code = 3003
	StaNoRefiner        Code = 3004

	// Конфигурация
	CfgInfo              Code = 5000
	CfgUnknownVersion    Code = 5001
	CfgVersionCount      Code = 5002
	CfgUnknownBrowser    Code = 5003
	CfgBadSupportEntry   Code = 5004
	CfgBadMode           Code = 5005
	CfgUnreadable        Code = 5006
	CfgDuplicateStrategy Code = 5007

	// Валидация
	ValInfo                 Code = 6000
	ValSelectorTooDeep      Code = 6001
	ValDuplicateDeclaration Code = 6002
	ValUnknownPrefix        Code = 6003
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	SynInfo:               "Syntax information",
	SynUnexpectedContent:  "Unexpected content",
	SynUnclosedBlock:      "Unclosed block",
	SynUnclosedString:     "Unclosed string",
	SynUnclosedComment:    "Unclosed comment",
	SynUnclosedFunction:   "Unclosed function arguments",
	SynMissingAtRuleName:  "Missing at-rule name",
	SynMissingAtRuleValue: "Missing at-rule expression or block",
	SynExpectedColon:      "Expected ':' after property name",
	SynExpectedValue:      "Expected a declaration value",
	SynMissingProperty:    "Missing property name",
	SynUnparsableSelector: "Unable to parse the remaining selector content",
	SynUnparsableValue:    "Unable to parse the remaining declaration value",
	SynTrailingComma:      "Expected a selector after ','",
	SynMissingBlock:       "Expected '{' after selector",
	SynMaxDepth:           "Maximum nesting depth exceeded",
	SynExpectedToken:      "Expected token",

	StaInfo:             "State information",
	StaDetached:         "Node is detached from its group",
	StaSelfReference:    "Node cannot be linked relative to itself",
	StaStatusRegression: "Node status cannot move backwards",
	StaNoRefiner:        "Node has no refiner attached",

	CfgInfo:              "Configuration information",
	CfgUnknownVersion:    "Version does not exist for browser",
	CfgVersionCount:      "Number of versions out of range",
	CfgUnknownBrowser:    "Unknown browser",
	CfgBadSupportEntry:   "Malformed support entry",
	CfgBadMode:           "Unknown output mode",
	CfgUnreadable:        "Configuration file cannot be read",
	CfgDuplicateStrategy: "Strategy registered twice",

	ValInfo:                 "Validation information",
	ValSelectorTooDeep:      "Selector has too many parts",
	ValDuplicateDeclaration: "Duplicate declaration in rule",
	ValUnknownPrefix:        "Unknown vendor prefix",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("STA%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("VAL%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
