package mapping

import (
	"regexp"

	"github.com/leapstack-labs/fieldmap/pkg/core"
)

// builtinPatterns returns the priority-ordered pattern rules. First match
// wins after sorting by priority (descending); within one priority the
// declaration order below is the tie-break.
func builtinPatterns() []PatternRule {
	p := func(expr string, prio int, g core.Group, d core.DType, term string) PatternRule {
		return PatternRule{
			Pattern:  regexp.MustCompile(expr),
			Priority: prio,
			Group:    g,
			DType:    d,
			Term:     term,
		}
	}
	return []PatternRule{
		// Time (very specific suffixes first)
		p(`起期$`, 90, core.GroupTime, core.DTypeDatetime, "start_date"),
		p(`止期$`, 90, core.GroupTime, core.DTypeDatetime, "end_date"),
		p(`生效日`, 90, core.GroupTime, core.DTypeDatetime, "effective_date"),
		p(`到期日`, 90, core.GroupTime, core.DTypeDatetime, "expiration_date"),
		p(`确认时间`, 85, core.GroupTime, core.DTypeDatetime, "confirmation_time"),
		p(`(投保|签单|批改|退保|报案|出险)时间`, 85, core.GroupTime, core.DTypeDatetime, ""),
		p(`时间$`, 80, core.GroupTime, core.DTypeDatetime, "time"),
		p(`日期$`, 80, core.GroupTime, core.DTypeDatetime, "date"),

		// Finance: premium
		p(`保费$`, 85, core.GroupFinance, core.DTypeNumber, "premium"),
		p(`(签单|商业险|交强险|批改|退保|实收)保费`, 85, core.GroupFinance, core.DTypeNumber, ""),

		// Finance: claims
		p(`赔款$`, 85, core.GroupFinance, core.DTypeNumber, "claim_amount"),
		p(`(总|案均|已决|未决)赔款`, 85, core.GroupFinance, core.DTypeNumber, ""),
		p(`(出险|索赔)次数`, 85, core.GroupFinance, core.DTypeNumber, "claim_count"),
		p(`(出险|索赔)频度`, 85, core.GroupFinance, core.DTypeNumber, "claim_frequency"),

		// Finance: fees
		p(`手续费|佣金`, 80, core.GroupFinance, core.DTypeNumber, "commission"),
		p(`费用(金额)?$`, 80, core.GroupFinance, core.DTypeNumber, "fee"),
		p(`(管理|服务)费`, 80, core.GroupFinance, core.DTypeNumber, ""),

		// Finance: ratios
		p(`(费用|赔付|综合成本|变动成本)率`, 80, core.GroupFinance, core.DTypeNumber, ""),
		p(`比率|比例`, 75, core.GroupFinance, core.DTypeNumber, "ratio"),

		// Finance: coefficients
		p(`(NCD|自主|渠道)系数`, 80, core.GroupFinance, core.DTypeNumber, ""),
		p(`折扣`, 75, core.GroupFinance, core.DTypeNumber, "discount"),

		// Finance: amounts
		p(`金额$`, 70, core.GroupFinance, core.DTypeNumber, "amount"),
		p(`价格`, 70, core.GroupFinance, core.DTypeNumber, "price"),

		// Organization
		p(`[三四五]级机构`, 75, core.GroupOrganization, core.DTypeString, ""),
		p(`(支|分)公司`, 75, core.GroupOrganization, core.DTypeString, ""),
		p(`营业部|中心`, 70, core.GroupOrganization, core.DTypeString, ""),
		p(`业务员|代理人?|经纪人?`, 75, core.GroupOrganization, core.DTypeString, ""),
		p(`渠道`, 70, core.GroupOrganization, core.DTypeString, "channel"),

		// Partner
		p(`4S店?|集团`, 75, core.GroupPartner, core.DTypeString, ""),

		// Vehicle
		p(`车牌(号码?)?`, 90, core.GroupVehicle, core.DTypeString, "license_plate"),
		p(`车架号|VIN`, 90, core.GroupVehicle, core.DTypeString, "vin"),
		p(`发动机号`, 85, core.GroupVehicle, core.DTypeString, "engine_number"),
		p(`车型|厂牌型号`, 75, core.GroupVehicle, core.DTypeString, "vehicle_model"),
		p(`品牌`, 70, core.GroupVehicle, core.DTypeString, "brand"),
		p(`新旧车`, 75, core.GroupVehicle, core.DTypeString, "vehicle_age_category"),
		p(`车龄`, 75, core.GroupVehicle, core.DTypeNumber, "vehicle_age"),
		p(`座位数|吨位|排量|功率`, 70, core.GroupVehicle, core.DTypeNumber, ""),

		// Product
		p(`险种|险别|险类`, 80, core.GroupProduct, core.DTypeString, ""),
		p(`产品(名称)?`, 75, core.GroupProduct, core.DTypeString, "product"),
		p(`保额|保险金额|限额`, 75, core.GroupProduct, core.DTypeNumber, ""),

		// Customer
		p(`投保人|被保险人`, 80, core.GroupCustomer, core.DTypeString, ""),
		p(`客户(名称|类型)?`, 75, core.GroupCustomer, core.DTypeString, ""),
		p(`证件(号码|类型)`, 75, core.GroupCustomer, core.DTypeString, ""),
		p(`联系电话|电话`, 70, core.GroupCustomer, core.DTypeString, "phone"),
		p(`地址`, 70, core.GroupCustomer, core.DTypeString, "address"),

		// Boolean flags
		p(`^是否`, 85, core.GroupFlag, core.DTypeBoolean, ""),
		p(`标识$|标志$`, 75, core.GroupFlag, core.DTypeBoolean, "flag"),

		// Policy identifiers
		p(`(保单|批单|投保单)号`, 80, core.GroupPolicy, core.DTypeString, ""),

		// Status
		p(`(保单|业务|承保|理赔)状态`, 75, core.GroupGeneral, core.DTypeString, ""),
		p(`状态$`, 65, core.GroupGeneral, core.DTypeString, "status"),

		// Score and level
		p(`评分$`, 70, core.GroupGeneral, core.DTypeNumber, "score"),
		p(`等级$`, 70, core.GroupGeneral, core.DTypeString, "level"),

		// General fallthrough shapes
		p(`类型$|种类$`, 60, core.GroupGeneral, core.DTypeString, "type"),
		p(`编号$|号$`, 60, core.GroupGeneral, core.DTypeString, "number"),
		p(`名称$`, 55, core.GroupGeneral, core.DTypeString, "name"),
	}
}
